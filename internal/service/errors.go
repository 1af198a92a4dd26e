package service

import "errors"

var (
	// ErrEmptyPlaintext indica que o KMS respondeu sem plaintext.
	ErrEmptyPlaintext = errors.New("unable to decrypt: kms returned no plaintext")
	// ErrInvalidCiphertext indica que o valor "encrypted" não é base64 válido.
	ErrInvalidCiphertext = errors.New("value is not a valid base64 ciphertext blob")
	// ErrUnknownValueType indica um ValueType fora de plaintext|encrypted.
	ErrUnknownValueType = errors.New("unknown value type")
	// ErrMissingName indica propriedades sem o nome do parâmetro.
	ErrMissingName = errors.New("parameter name is required")
)
