package models

// Exercise is a catalog entry. Global exercises (IsCustom false, no owner)
// are immutable from the client; custom exercises belong to the signed-in
// user and may be deleted.
type Exercise struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Muscles  []string `json:"muscles,omitempty"`
	IsCustom bool     `json:"is_custom"`
	OwnerID  *int64   `json:"user_id,omitempty"`
}

// Deletable reports whether the client may offer deletion for this exercise.
func (e Exercise) Deletable() bool {
	return e.IsCustom
}
