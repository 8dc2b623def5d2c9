package storefront

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/pkg/errors"
)

// Store holds the state tree. Dispatch is serialized; after each reduction the
// matching persistence effect runs and subscribers are called with the new
// state on the dispatching goroutine. Subscribers must not call Dispatch.
type Store struct {
	mu      sync.Mutex
	state   State
	storage LocalStorage
	subs    map[int]func(State)
	nextSub int
}

// NewStore hydrates the cart and the logged-in user from storage. Missing or
// unreadable entries fall back to their defaults.
func NewStore(storage LocalStorage) (*Store, error) {
	st, err := Hydrate(storage)
	if err != nil {
		return nil, err
	}
	return &Store{state: st, storage: storage, subs: map[int]func(State){}}, nil
}

func Hydrate(storage LocalStorage) (State, error) {
	st := State{Cart: emptyCart()}
	if err := load(storage, KeyCartItems, &st.Cart.CartItems); err != nil {
		return State{}, err
	}
	if st.Cart.CartItems == nil {
		st.Cart.CartItems = []CartItem{}
	}
	if err := load(storage, KeyShippingAddress, &st.Cart.ShippingAddress); err != nil {
		return State{}, err
	}
	if err := load(storage, KeyPaymentMethod, &st.Cart.PaymentMethod); err != nil {
		return State{}, err
	}
	if st.Cart.PaymentMethod == "" {
		st.Cart.PaymentMethod = DefaultPaymentMethod
	}
	var info *UserInfo
	if err := load(storage, KeyUserInfo, &info); err != nil {
		return State{}, err
	}
	st.UserLogin.Data = info
	return st, nil
}

// load leaves dst untouched unless the whole snapshot decodes.
func load[T any](storage LocalStorage, key string, dst *T) error {
	b, ok, err := storage.GetItem(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		slog.Warn("storefront: discarding unreadable snapshot", "key", key, "err", err)
		return nil
	}
	*dst = v
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the state and persists what it changed. The new
// state is kept even when persisting fails.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = Reduce(prev, a)
	err := s.persist(a, prev, s.state)
	for _, fn := range s.subs {
		fn(s.state)
	}
	return err
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) persist(a Action, prev, next State) error {
	switch a.(type) {
	case CartItemAdded, CartItemRemoved:
		return s.save(KeyCartItems, next.Cart.CartItems)
	case CartCleared:
		return s.storage.RemoveItem(KeyCartItems)
	case ShippingAddressSaved:
		return s.save(KeyShippingAddress, next.Cart.ShippingAddress)
	case PaymentMethodSaved:
		return s.save(KeyPaymentMethod, next.Cart.PaymentMethod)
	case Succeeded:
		if next.UserLogin.Data != prev.UserLogin.Data && next.UserLogin.Data != nil {
			return s.save(KeyUserInfo, next.UserLogin.Data)
		}
	case LoggedOut:
		for _, k := range []string{KeyUserInfo, KeyCartItems, KeyShippingAddress, KeyPaymentMethod} {
			if err := s.storage.RemoveItem(k); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) save(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %s", key)
	}
	return s.storage.SetItem(key, b)
}
