package model

// SecretRecord is one account as printed by `lpass show --json`.
// Any other fields in the vault output are ignored.
type SecretRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
	URL      string `json:"url"`
}
