package models

import "encoding/json"

// Student is an öğrenci record as the backend stores it.
type Student struct {
	ID        ID     `json:"id"`
	FirstName string `json:"ad"`
	LastName  string `json:"soyad"`
	Class     string `json:"sinif"`
	Number    string `json:"okulNo,omitempty"`
	Email     string `json:"email,omitempty"`
	GuideID   ID     `json:"rehberId,omitempty"`
}

func (s *Student) UnmarshalJSON(data []byte) error {
	type alias Student
	aux := struct {
		*alias
		MongoID ID `json:"_id"`
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.ID = FirstID(s.ID, aux.MongoID)
	return nil
}

// FullName joins first and last name with a single space.
func (s Student) FullName() string {
	switch {
	case s.FirstName == "":
		return s.LastName
	case s.LastName == "":
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// StudentUpdate is the PUT body for /api/ogrenci/{id}. Nil fields are left unchanged.
type StudentUpdate struct {
	FirstName *string `json:"ad,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"soyad,omitempty" validate:"omitempty,min=1,max=100"`
	Class     *string `json:"sinif,omitempty" validate:"omitempty,class_label"`
	Number    *string `json:"okulNo,omitempty" validate:"omitempty,max=20"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}

// StudentInfo is the student snapshot embedded in a result (ogrenciInfo).
type StudentInfo struct {
	FirstName string `json:"ad,omitempty"`
	LastName  string `json:"soyad,omitempty"`
	Class     string `json:"sinif"`
}
