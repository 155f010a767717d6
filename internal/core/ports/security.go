package ports

// SecurityPort defines the interface for encrypting and decrypting data
// stored at rest, such as chat display names.
type SecurityPort interface {
	// Encrypt seals plaintext. associatedData (e.g. the owning row's ID) is
	// authenticated but not stored; Decrypt must be given the same value.
	Encrypt(plaintext, associatedData []byte) (ciphertext []byte, err error)

	// Decrypt opens a ciphertext produced by Encrypt.
	Decrypt(ciphertext, associatedData []byte) (plaintext []byte, err error)
}
