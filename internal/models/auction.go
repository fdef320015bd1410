package models

// AuctionVehicle is a vehicle listed for auction.
type AuctionVehicle struct {
	ID          int64   `json:"id"`
	Status      string  `json:"status"`
	Description string  `json:"description"`
	StartingBid float64 `json:"starting_bid" validate:"gte=0"`
	Image       string  `json:"image"`
	VehicleID   int64   `json:"vehicle_id" validate:"required,gt=0"`
	// BoughtUser is the buyer, unset until the vehicle is sold.
	BoughtUser *int64   `json:"bought_user"`
	FinalPrice *float64 `json:"final_price" validate:"omitempty,gte=0"`
}

// AuctionVehiclePatch holds the fields present in an update request.
type AuctionVehiclePatch struct {
	Status      *string           `json:"status"`
	Description *string           `json:"description"`
	StartingBid *float64          `json:"starting_bid" validate:"omitempty,gte=0"`
	Image       *string           `json:"image"`
	VehicleID   *int64            `json:"vehicle_id" validate:"omitempty,gt=0"`
	BoughtUser  Nullable[int64]   `json:"bought_user" validate:"omitempty,gt=0"`
	FinalPrice  Nullable[float64] `json:"final_price" validate:"omitempty,gte=0"`
}

// Apply merges the patch into a.
func (p AuctionVehiclePatch) Apply(a *AuctionVehicle) {
	set(&a.Status, p.Status)
	set(&a.Description, p.Description)
	set(&a.StartingBid, p.StartingBid)
	set(&a.Image, p.Image)
	set(&a.VehicleID, p.VehicleID)
	setNullable(&a.BoughtUser, p.BoughtUser)
	setNullable(&a.FinalPrice, p.FinalPrice)
}
