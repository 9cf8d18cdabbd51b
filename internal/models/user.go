package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is keyed by email; everything else is whatever the client last sent.
type User struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Email     string             `json:"email" bson:"email"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	PhotoURL  string             `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Phone     string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Role      string             `json:"role,omitempty" bson:"role,omitempty"`
	LastLogin time.Time          `json:"lastLogin" bson:"lastLogin"`
	Extra     map[string]any     `json:"-" bson:",inline"`
}

func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return marshalWithExtra(plain(u), u.Extra)
}

func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*u = User(p)
	u.Extra = extra
	return nil
}

// UserInput is the body of PUT /users/{email}. Nil fields are left untouched.
type UserInput struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	PhotoURL *string `json:"photoURL,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`

	Extra map[string]any `json:"-"`
}

func (in *UserInput) UnmarshalJSON(data []byte) error {
	type plain UserInput
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	extra, err := splitExtra(data, p)
	if err != nil {
		return err
	}
	*in = UserInput(p)
	in.Extra = extra
	return nil
}

// Fields returns the supplied fields keyed by their document names.
// The email in the path always wins over one in the body.
func (in UserInput) Fields(email string) map[string]any {
	set := map[string]any{"email": email}
	putString(set, "name", in.Name)
	putString(set, "photoURL", in.PhotoURL)
	putString(set, "phone", in.Phone)
	putString(set, "role", in.Role)
	mergeExtra(set, in.Extra)
	return set
}

func putString(set map[string]any, key string, v *string) {
	if v != nil {
		set[key] = *v
	}
}
