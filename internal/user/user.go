package user

// User is a registered shopper (or admin). The address fields are the
// customer's saved defaults; the address actually used for a given order is
// snapshotted onto the order itself.
type User struct {
	ID        int    `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
