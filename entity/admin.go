package entity

// Administrator is a seeded back-office account. Records are provisioned
// out of band (see the seed flags in cmd/server) and read-only at runtime.
type Administrator struct {
	Id           string `json:"id" bson:"_id"`
	Username     string `json:"username" bson:"username"`
	PasswordHash string `json:"-" bson:"password"`
}
