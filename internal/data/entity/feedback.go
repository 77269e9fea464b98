package entity

// Feedback is a public, unauthenticated review of the service
type Feedback struct {
	BaseSimple
	Name    string `db:"name"`
	Comment string `db:"comment"`
	Stars   int    `db:"stars"` // 1-5
}
