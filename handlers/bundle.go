package handlers

// HandlerBundle aggregates the handlers so route registration takes a
// single dependency.
type HandlerBundle struct {
	Booking *BookingHandler
	Shop    *ShopHandler
	User    *UserHandler
}
