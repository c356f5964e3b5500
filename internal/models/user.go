package models

import "encoding/json"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleGuide   UserRole = "rehber"
	RoleStudent UserRole = "ogrenci"
)

type User struct {
	ID       ID       `json:"id"`
	Email    string   `json:"email"`
	FullName string   `json:"adSoyad"`
	Role     UserRole `json:"role" validate:"omitempty,user_role"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID ID `json:"_id"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = FirstID(u.ID, aux.MongoID)
	return nil
}

// Guide is a rehber (school counselor) profile.
type Guide struct {
	ID           ID     `json:"id"`
	FirstName    string `json:"ad"`
	LastName     string `json:"soyad"`
	Email        string `json:"email"`
	School       string `json:"okul,omitempty"`
	StudentCount int    `json:"ogrenciSayisi,omitempty"`
}

func (g *Guide) UnmarshalJSON(data []byte) error {
	type alias Guide
	aux := struct {
		*alias
		MongoID ID `json:"_id"`
	}{alias: (*alias)(g)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.ID = FirstID(g.ID, aux.MongoID)
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
