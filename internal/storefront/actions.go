package storefront

import "github.com/ariefcatur/go-storefront/internal/orders"

// Action is one of the variants declared in this file. The set is closed.
type Action interface{ isAction() }

type (
	Requested struct{ Resource Resource }

	// Succeeded carries the branch's data type; a mismatched Data leaves the
	// state untouched.
	Succeeded struct {
		Resource Resource
		Data     any
	}

	Failed struct {
		Resource Resource
		Err      string
	}

	Reset struct{ Resource Resource }

	// CartItemAdded replaces the line for the same product, so it also covers
	// a quantity change.
	CartItemAdded struct{ Item CartItem }

	CartItemRemoved struct{ Product string }

	ShippingAddressSaved struct{ Address orders.ShippingAddress }

	PaymentMethodSaved struct{ Method string }

	CartCleared struct{}

	LoggedOut struct{}
)

func (Requested) isAction()            {}
func (Succeeded) isAction()            {}
func (Failed) isAction()               {}
func (Reset) isAction()                {}
func (CartItemAdded) isAction()        {}
func (CartItemRemoved) isAction()      {}
func (ShippingAddressSaved) isAction() {}
func (PaymentMethodSaved) isAction()   {}
func (CartCleared) isAction()          {}
func (LoggedOut) isAction()            {}
