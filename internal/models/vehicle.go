package models

// Vehicle is a fleet vehicle.
type Vehicle struct {
	ID             int64  `json:"id"`
	AssignedDriver *int64 `json:"assigned_driver"`
	CarModel       string `json:"car_model" validate:"required"`
	Color          string `json:"color"`
	// CurrentMileage is the odometer reading at the last update.
	CurrentMileage  int    `json:"current_mileage" validate:"gte=0"`
	LastMaintenance string `json:"last_maintenance"`
	LicensePlate    string `json:"license_plate" validate:"required"`
	Make            string `json:"make" validate:"required"`
	NextMaintenance string `json:"next_maintenance"`
	Notes           string `json:"notes"`
	// SittingCapacity is the number of seats, driver included.
	SittingCapacity int    `json:"sitting_capacity" validate:"gte=0"`
	Status          string `json:"status"`
	Type            string `json:"type"`
	VIN             string `json:"vin"`
	Year            int    `json:"year" validate:"gte=0"`
}

// VehiclePatch holds the fields present in a vehicle update request.
type VehiclePatch struct {
	AssignedDriver  Nullable[int64] `json:"assigned_driver" validate:"omitempty,gt=0"`
	CarModel        *string         `json:"car_model" validate:"omitempty,min=1"`
	Color           *string         `json:"color"`
	CurrentMileage  *int            `json:"current_mileage" validate:"omitempty,gte=0"`
	LastMaintenance *string         `json:"last_maintenance"`
	LicensePlate    *string         `json:"license_plate" validate:"omitempty,min=1"`
	Make            *string         `json:"make" validate:"omitempty,min=1"`
	NextMaintenance *string         `json:"next_maintenance"`
	Notes           *string         `json:"notes"`
	SittingCapacity *int            `json:"sitting_capacity" validate:"omitempty,gte=0"`
	Status          *string         `json:"status"`
	Type            *string         `json:"type"`
	VIN             *string         `json:"vin"`
	Year            *int            `json:"year" validate:"omitempty,gte=0"`
}

// Apply merges the patch into v.
func (p VehiclePatch) Apply(v *Vehicle) {
	setNullable(&v.AssignedDriver, p.AssignedDriver)
	set(&v.CarModel, p.CarModel)
	set(&v.Color, p.Color)
	set(&v.CurrentMileage, p.CurrentMileage)
	set(&v.LastMaintenance, p.LastMaintenance)
	set(&v.LicensePlate, p.LicensePlate)
	set(&v.Make, p.Make)
	set(&v.NextMaintenance, p.NextMaintenance)
	set(&v.Notes, p.Notes)
	set(&v.SittingCapacity, p.SittingCapacity)
	set(&v.Status, p.Status)
	set(&v.Type, p.Type)
	set(&v.VIN, p.VIN)
	set(&v.Year, p.Year)
}

// Driver links a user to the vehicle they drive.
type Driver struct {
	UserID    int64 `json:"user_id" validate:"required,gt=0"`
	VehicleID int64 `json:"vehicle_id" validate:"required,gt=0"`
}
