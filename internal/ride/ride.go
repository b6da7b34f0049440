package ride

import "time"

// Ride is one trip in the user's history.
type Ride struct {
	ID            string     `json:"id"`
	Pickup        string     `json:"pickup"`
	Destination   string     `json:"destination"`
	Fare          float64    `json:"fare"`
	Status        string     `json:"status"`
	DriverName    string     `json:"driverName,omitempty"`
	VehicleNumber string     `json:"vehicleNumber,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// Report is a complaint about a driver.
type Report struct {
	RideID      string `json:"rideId,omitempty" validate:"required_without=DriverName"`
	DriverName  string `json:"driverName,omitempty" validate:"required_without=RideID"`
	Reason      string `json:"reason" validate:"required"`
	Description string `json:"description" validate:"required,min=10"`
}
