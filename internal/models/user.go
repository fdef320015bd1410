package models

// User is a principal as exposed to callers. It never carries the password hash.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name; unique and case-sensitive.
	Username string `json:"username"`
	// Role is a free-form role label such as "admin" or "driver".
	Role string `json:"role"`

	Address              string `json:"address"`
	DrivingLicenseNumber string `json:"driving_license_number"`
	Email                string `json:"email"`
	FirstName            string `json:"first_name"`
	GovernmentID         string `json:"government_id"`
	LastName             string `json:"last_name"`
	MiddleName           string `json:"middle_name"`
	PhoneNumber          string `json:"phone_number"`
}

// UserCredentials is the stored user row including the bcrypt hash.
// Only the repository and the authentication service handle it.
type UserCredentials struct {
	User
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}

// UserCreate is the payload for creating a user.
type UserCreate struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=1,max=72"`
	Role     string `json:"role" validate:"required"`

	Address              string `json:"address"`
	DrivingLicenseNumber string `json:"driving_license_number"`
	Email                string `json:"email" validate:"omitempty,email"`
	FirstName            string `json:"first_name"`
	GovernmentID         string `json:"government_id"`
	LastName             string `json:"last_name"`
	MiddleName           string `json:"middle_name"`
	PhoneNumber          string `json:"phone_number"`
}

// Profile returns the user fields of the payload.
func (c UserCreate) Profile() User {
	return User{
		Username:             c.Username,
		Role:                 c.Role,
		Address:              c.Address,
		DrivingLicenseNumber: c.DrivingLicenseNumber,
		Email:                c.Email,
		FirstName:            c.FirstName,
		GovernmentID:         c.GovernmentID,
		LastName:             c.LastName,
		MiddleName:           c.MiddleName,
		PhoneNumber:          c.PhoneNumber,
	}
}

// UserPatch holds the fields present in an update request.
type UserPatch struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=150"`
	Password *string `json:"password" validate:"omitempty,min=1,max=72"`
	Role     *string `json:"role" validate:"omitempty,min=1"`

	Address              *string `json:"address"`
	DrivingLicenseNumber *string `json:"driving_license_number"`
	Email                *string `json:"email" validate:"omitempty,email"`
	FirstName            *string `json:"first_name"`
	GovernmentID         *string `json:"government_id"`
	LastName             *string `json:"last_name"`
	MiddleName           *string `json:"middle_name"`
	PhoneNumber          *string `json:"phone_number"`
}

// Apply merges the patch into u. The password is handled by the caller since it
// has to be hashed first.
func (p UserPatch) Apply(u *User) {
	set(&u.Username, p.Username)
	set(&u.Role, p.Role)
	set(&u.Address, p.Address)
	set(&u.DrivingLicenseNumber, p.DrivingLicenseNumber)
	set(&u.Email, p.Email)
	set(&u.FirstName, p.FirstName)
	set(&u.GovernmentID, p.GovernmentID)
	set(&u.LastName, p.LastName)
	set(&u.MiddleName, p.MiddleName)
	set(&u.PhoneNumber, p.PhoneNumber)
}
