package account

// credential holds the account PIN and isolates verification behind a single
// capability so a hashed scheme can be substituted without touching callers.
// Today it is a plaintext equality check.
type credential string

func (c credential) verify(input string) bool {
	return string(c) == input
}
