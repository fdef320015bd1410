package models

import "time"

// MaintenanceRequest records a service performed or planned on a vehicle.
type MaintenanceRequest struct {
	ID                  int64   `json:"id"`
	MaintenanceDate     string  `json:"maintenance_date"`
	MaintenancePersonID int64   `json:"maintenance_person_id" validate:"required,gt=0"`
	MileageAtService    int     `json:"mileage_at_service" validate:"gte=0"`
	Notes               string  `json:"notes"`
	ServiceType         string  `json:"service_type"`
	Status              string  `json:"status"`
	TotalCost           float64 `json:"total_cost" validate:"gte=0"`
	VehicleID           int64   `json:"vehicle_id" validate:"required,gt=0"`
}

// MaintenanceRequestPatch holds the fields present in an update request.
type MaintenanceRequestPatch struct {
	MaintenanceDate     *string  `json:"maintenance_date"`
	MaintenancePersonID *int64   `json:"maintenance_person_id" validate:"omitempty,gt=0"`
	MileageAtService    *int     `json:"mileage_at_service" validate:"omitempty,gte=0"`
	Notes               *string  `json:"notes"`
	ServiceType         *string  `json:"service_type"`
	Status              *string  `json:"status"`
	TotalCost           *float64 `json:"total_cost" validate:"omitempty,gte=0"`
	VehicleID           *int64   `json:"vehicle_id" validate:"omitempty,gt=0"`
}

// Apply merges the patch into m.
func (p MaintenanceRequestPatch) Apply(m *MaintenanceRequest) {
	set(&m.MaintenanceDate, p.MaintenanceDate)
	set(&m.MaintenancePersonID, p.MaintenancePersonID)
	set(&m.MileageAtService, p.MileageAtService)
	set(&m.Notes, p.Notes)
	set(&m.ServiceType, p.ServiceType)
	set(&m.Status, p.Status)
	set(&m.TotalCost, p.TotalCost)
	set(&m.VehicleID, p.VehicleID)
}

// FuelingRequest records a refuel of a vehicle.
type FuelingRequest struct {
	ID                 int64     `json:"id"`
	AfterFuelingImage  string    `json:"after_fueling_image"`
	Amount             float64   `json:"amount" validate:"gte=0"`
	BeforeFuelingImage string    `json:"before_fueling_image"`
	FuelingPersonID    int64     `json:"fueling_person_id" validate:"required,gt=0"`
	GasStation         string    `json:"gas_station"`
	Notes              string    `json:"notes"`
	TotalCost          float64   `json:"total_cost" validate:"gte=0"`
	VehicleID          int64     `json:"vehicle_id" validate:"required,gt=0"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// FuelingRequestPatch holds the fields present in an update request.
type FuelingRequestPatch struct {
	AfterFuelingImage  *string  `json:"after_fueling_image"`
	Amount             *float64 `json:"amount" validate:"omitempty,gte=0"`
	BeforeFuelingImage *string  `json:"before_fueling_image"`
	FuelingPersonID    *int64   `json:"fueling_person_id" validate:"omitempty,gt=0"`
	GasStation         *string  `json:"gas_station"`
	Notes              *string  `json:"notes"`
	TotalCost          *float64 `json:"total_cost" validate:"omitempty,gte=0"`
	VehicleID          *int64   `json:"vehicle_id" validate:"omitempty,gt=0"`
	Status             *string  `json:"status"`
}

// Apply merges the patch into f. Timestamps are maintained by the store.
func (p FuelingRequestPatch) Apply(f *FuelingRequest) {
	set(&f.AfterFuelingImage, p.AfterFuelingImage)
	set(&f.Amount, p.Amount)
	set(&f.BeforeFuelingImage, p.BeforeFuelingImage)
	set(&f.FuelingPersonID, p.FuelingPersonID)
	set(&f.GasStation, p.GasStation)
	set(&f.Notes, p.Notes)
	set(&f.TotalCost, p.TotalCost)
	set(&f.VehicleID, p.VehicleID)
	set(&f.Status, p.Status)
}

// Task is a trip assigned to a driver.
type Task struct {
	ID             int64   `json:"id"`
	DriverID       int64   `json:"driver_id" validate:"required,gt=0"`
	StartLatitude  float64 `json:"start_latitude" validate:"latitude"`
	StartLongitude float64 `json:"start_longitude" validate:"longitude"`
	EndLatitude    float64 `json:"end_latitude" validate:"latitude"`
	EndLongitude   float64 `json:"end_longitude" validate:"longitude"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
}

// TaskPatch holds the fields present in a task update request.
type TaskPatch struct {
	DriverID       *int64   `json:"driver_id" validate:"omitempty,gt=0"`
	StartLatitude  *float64 `json:"start_latitude" validate:"omitempty,latitude"`
	StartLongitude *float64 `json:"start_longitude" validate:"omitempty,longitude"`
	EndLatitude    *float64 `json:"end_latitude" validate:"omitempty,latitude"`
	EndLongitude   *float64 `json:"end_longitude" validate:"omitempty,longitude"`
	StartTime      *string  `json:"start_time"`
	EndTime        *string  `json:"end_time"`
	Notes          *string  `json:"notes"`
	Status         *string  `json:"status"`
}

// Apply merges the patch into t.
func (p TaskPatch) Apply(t *Task) {
	set(&t.DriverID, p.DriverID)
	set(&t.StartLatitude, p.StartLatitude)
	set(&t.StartLongitude, p.StartLongitude)
	set(&t.EndLatitude, p.EndLatitude)
	set(&t.EndLongitude, p.EndLongitude)
	set(&t.StartTime, p.StartTime)
	set(&t.EndTime, p.EndTime)
	set(&t.Notes, p.Notes)
	set(&t.Status, p.Status)
}
