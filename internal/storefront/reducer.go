package storefront

// Reduce returns the state after a. It never mutates s and never touches
// storage.
func Reduce(s State, a Action) State {
	next := s
	switch a := a.(type) {
	case Requested:
		if b := next.branch(a.Resource); b != nil {
			b.request()
		}
	case Succeeded:
		b := next.branch(a.Resource)
		if b == nil || !b.succeed(a.Data) {
			return s
		}
		// Register and profile updates also log the user in with the
		// returned identity.
		switch a.Resource {
		case UserRegister, UserUpdateProfile:
			next.UserLogin.succeed(a.Data)
		}
	case Failed:
		if b := next.branch(a.Resource); b != nil {
			b.fail(a.Err)
		}
	case Reset:
		if b := next.branch(a.Resource); b != nil {
			b.reset()
		}
	case CartItemAdded:
		next.Cart.CartItems = upsertItem(s.Cart.CartItems, a.Item)
	case CartItemRemoved:
		next.Cart.CartItems = removeItem(s.Cart.CartItems, a.Product)
	case ShippingAddressSaved:
		next.Cart.ShippingAddress = a.Address
	case PaymentMethodSaved:
		next.Cart.PaymentMethod = a.Method
	case CartCleared:
		next.Cart.CartItems = []CartItem{}
	case LoggedOut:
		next.UserLogin.reset()
		next.UserDetails.reset()
		next.OrderMyList.reset()
		next.UserList.reset()
		next.Cart = emptyCart()
	}
	return next
}

func emptyCart() Cart {
	return Cart{CartItems: []CartItem{}, PaymentMethod: DefaultPaymentMethod}
}

func upsertItem(items []CartItem, it CartItem) []CartItem {
	out := make([]CartItem, 0, len(items)+1)
	replaced := false
	for _, x := range items {
		if x.Product == it.Product {
			out = append(out, it)
			replaced = true
			continue
		}
		out = append(out, x)
	}
	if !replaced {
		out = append(out, it)
	}
	return out
}

func removeItem(items []CartItem, product string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, x := range items {
		if x.Product != product {
			out = append(out, x)
		}
	}
	return out
}
