package entity

// OperatorSession is the decoded token payload for the ops endpoints.
type OperatorSession struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
