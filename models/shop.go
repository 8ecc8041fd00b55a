package models

import "time"

// ShopService is one service a shop offers, scoped to vehicle categories.
// Price is in whole currency units.
type ShopService struct {
	ID              string   `bson:"id" json:"id"`
	Name            string   `bson:"name" json:"name"`
	Price           int64    `bson:"price" json:"price"`
	DurationMinutes int      `bson:"durationMinutes" json:"durationMinutes"`
	VehicleTypes    []string `bson:"vehicleTypes" json:"vehicleTypes"`
}

// Shop is a wash center profile.
type Shop struct {
	ID           string        `bson:"id" json:"id"`
	OwnerID      string        `bson:"ownerId" json:"ownerId"`
	Name         string        `bson:"name" json:"name"`
	Location     string        `bson:"location" json:"location"`
	Lat          float64       `bson:"lat" json:"lat"`
	Lng          float64       `bson:"lng" json:"lng"`
	Hours        string        `bson:"hours" json:"hours"`
	VehicleTypes []string      `bson:"vehicleTypes" json:"vehicleTypes"`
	PickAndDrop  bool          `bson:"pickAndDrop" json:"pickAndDrop"`
	WashAtHome   bool          `bson:"washAtHome" json:"washAtHome"`
	Services     []ShopService `bson:"services" json:"services"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
}

// ServicesFor returns the shop's services valid for the given vehicle category.
func (s *Shop) ServicesFor(vehicle string) []ShopService {
	var out []ShopService
	for _, svc := range s.Services {
		for _, vt := range svc.VehicleTypes {
			if vt == vehicle {
				out = append(out, svc)
				break
			}
		}
	}
	return out
}
