// internal/storefront/checkout_test.go
package storefront

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/stylehub/internal/models"
	"github.com/javajoker/stylehub/internal/utils"
)

type fakeSubmitter struct {
	err    error
	orders []*models.Order
}

func (f *fakeSubmitter) SubmitOrder(_ context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

func validForm() CheckoutForm {
	return CheckoutForm{
		FullName:      "Ayesha Khan",
		Email:         "ayesha@example.com",
		Phone:         "03000000000",
		Address:       "12 Mall Road",
		City:          "Lahore",
		State:         "Punjab",
		PostalCode:    "54000",
		Country:       "Pakistan",
		PaymentMethod: "COD",
	}
}

type CheckoutTestSuite struct {
	suite.Suite
	storage   *MemoryStorage
	cart      *CartStore
	submitter *fakeSubmitter
	checkout  *Checkout
}

func (s *CheckoutTestSuite) SetupTest() {
	s.storage = NewMemoryStorage()
	s.cart = NewCartStore(s.storage)
	s.submitter = &fakeSubmitter{}
	s.checkout = NewCheckout(s.cart, s.storage, s.submitter, nil)
	s.checkout.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
}

func (s *CheckoutTestSuite) fillCart() {
	s.Require().NoError(s.cart.Add("jeans-1", "Slim Fit Jeans", 2600, "32"))
	s.Require().NoError(s.cart.Add("jeans-1", "Slim Fit Jeans", 2600, "32"))
}

func (s *CheckoutTestSuite) TestEmptyCartCannotOpen() {
	s.ErrorIs(s.checkout.Open(), ErrCartEmpty)
	s.Equal(StateIdle, s.checkout.State())
}

func (s *CheckoutTestSuite) TestHappyPath() {
	s.fillCart()

	s.Require().NoError(s.checkout.Open())
	s.Equal(StateFormOpen, s.checkout.State())

	order, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)
	s.Equal(StateSubmitted, s.checkout.State())
	s.Regexp(`^ORD-\d+$`, order.OrderID)
	s.Equal("None", order.Notes)
	s.Equal("cod", order.PaymentMethod)
	s.Equal(5200.0, order.OrderSummary.Subtotal)
	s.Equal(0.0, order.OrderSummary.Shipping)
	s.Equal(260.0, order.OrderSummary.Tax)
	s.Equal(5460.0, order.OrderSummary.Total)

	s.Require().NoError(s.checkout.Confirm(context.Background()))
	s.Equal(StateConfirmed, s.checkout.State())
	s.Require().Len(s.submitter.orders, 1)
	s.Equal(order.OrderID, s.submitter.orders[0].OrderID)

	// The cart stays until the confirmation is dismissed.
	s.Equal(2, s.cart.Count())

	last, err := s.checkout.LastOrder()
	s.Require().NoError(err)
	s.Equal(order.OrderID, last.OrderID)
	s.Equal(order.OrderSummary, last.OrderSummary)

	s.Require().NoError(s.checkout.Clear())
	s.Equal(StateCleared, s.checkout.State())
	s.Zero(s.cart.Count())
	s.Zero(NewCartStore(s.storage).Count())
}

func (s *CheckoutTestSuite) TestSnapshotIsFrozen() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	order, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.Require().NoError(s.cart.Add("shirt-1", "Oxford Shirt", 2200, "M"))

	s.Require().NoError(s.checkout.Confirm(context.Background()))
	sent := s.submitter.orders[0]
	s.Len(sent.Items, 1)
	s.Equal(order.OrderSummary, sent.OrderSummary)
}

func (s *CheckoutTestSuite) TestInvalidFormStaysOpen() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())

	form := validForm()
	form.Email = "not-an-email"
	form.City = "   "
	form.PaymentMethod = ""

	_, err := s.checkout.Submit(form)
	var verr *utils.ValidationError
	s.Require().ErrorAs(err, &verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	s.ElementsMatch([]string{"email", "city", "paymentMethod"}, fields)
	s.Equal(StateFormOpen, s.checkout.State())
	s.Nil(s.checkout.Order())
}

func (s *CheckoutTestSuite) TestCancel() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	s.Require().NoError(s.checkout.Cancel())
	s.Equal(StateIdle, s.checkout.State())
	s.ErrorIs(s.checkout.Cancel(), ErrInvalidTransition)
}

func (s *CheckoutTestSuite) TestFailedSubmissionKeepsCart() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	_, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.submitter.err = errors.New("connection refused")
	err = s.checkout.Confirm(context.Background())
	s.True(utils.IsBackend(err))
	s.Equal(StateSubmitted, s.checkout.State())
	s.Equal(2, s.cart.Count())

	_, err = s.checkout.LastOrder()
	s.ErrorIs(err, utils.ErrNotFound)

	s.submitter.err = nil
	s.Require().NoError(s.checkout.Confirm(context.Background()))
	s.Equal(StateConfirmed, s.checkout.State())
}

func (s *CheckoutTestSuite) TestConflictOnRetryConfirms() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	_, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.submitter.err = utils.ErrConflict
	s.Require().NoError(s.checkout.Confirm(context.Background()))
	s.Equal(StateConfirmed, s.checkout.State())
}

func (s *CheckoutTestSuite) TestLastOrderWriteFailureStaysSubmitted() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	_, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.storage.FailWrites = errors.New("read-only file system")
	err = s.checkout.Confirm(context.Background())
	var perr *utils.PersistenceError
	s.Require().ErrorAs(err, &perr)
	s.Equal(models.LastOrderStorageKey, perr.Key)
	s.Equal(StateSubmitted, s.checkout.State())
}

func (s *CheckoutTestSuite) TestWrongStateTransitions() {
	_, err := s.checkout.Submit(validForm())
	s.ErrorIs(err, ErrInvalidTransition)
	s.ErrorIs(s.checkout.Confirm(context.Background()), ErrInvalidTransition)
	s.ErrorIs(s.checkout.Clear(), ErrInvalidTransition)

	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	s.ErrorIs(s.checkout.Open(), ErrInvalidTransition)
	s.ErrorIs(s.checkout.Clear(), ErrInvalidTransition)

	_, err = s.checkout.Submit(validForm())
	s.Require().NoError(err)
	s.Require().NoError(s.checkout.Confirm(context.Background()))
	s.Require().NoError(s.checkout.Clear())

	s.ErrorIs(s.checkout.Open(), ErrInvalidTransition)
	s.ErrorIs(s.checkout.Clear(), ErrInvalidTransition)
	s.Equal(StateCleared, s.checkout.State())
}

func (s *CheckoutTestSuite) TestRetryFromNewRunResendsSameOrder() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	order, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.submitter.err = errors.New("status 502: gateway")
	s.Error(s.checkout.Confirm(context.Background()))

	// A later run starts from storage alone.
	s.submitter.err = nil
	cart := NewCartStore(s.storage)
	next := NewCheckout(cart, s.storage, s.submitter, nil)

	resumed, ok, err := next.Resume()
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal(order.OrderID, resumed.OrderID)
	s.Equal(StateSubmitted, next.State())

	s.Require().NoError(next.Confirm(context.Background()))
	s.Require().Len(s.submitter.orders, 1)
	s.Equal(order.OrderID, s.submitter.orders[0].OrderID)

	s.Require().NoError(next.Clear())
	_, err = s.storage.Get(models.PendingOrderStorageKey)
	s.ErrorIs(err, ErrKeyNotFound)

	_, ok, err = NewCheckout(cart, s.storage, s.submitter, nil).Resume()
	s.NoError(err)
	s.False(ok)
}

func (s *CheckoutTestSuite) TestResumeDiscardsOrderForChangedCart() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())
	_, err := s.checkout.Submit(validForm())
	s.Require().NoError(err)

	s.Require().NoError(s.cart.Add("shirt-1", "Oxford Shirt", 2200, "M"))

	next := NewCheckout(NewCartStore(s.storage), s.storage, s.submitter, nil)
	_, ok, err := next.Resume()
	s.Require().NoError(err)
	s.False(ok)
	s.Equal(StateIdle, next.State())

	_, err = s.storage.Get(models.PendingOrderStorageKey)
	s.ErrorIs(err, ErrKeyNotFound)
}

func (s *CheckoutTestSuite) TestResumeOnlyWhileIdle() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())

	_, _, err := s.checkout.Resume()
	s.ErrorIs(err, ErrInvalidTransition)
}

func (s *CheckoutTestSuite) TestPendingWriteFailureStaysOpen() {
	s.fillCart()
	s.Require().NoError(s.checkout.Open())

	s.storage.FailWrites = errors.New("disk full")
	_, err := s.checkout.Submit(validForm())

	var perr *utils.PersistenceError
	s.Require().ErrorAs(err, &perr)
	s.Equal(models.PendingOrderStorageKey, perr.Key)
	s.Equal(StateFormOpen, s.checkout.State())
	s.Nil(s.checkout.Order())
}

func TestCheckoutSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func TestOrderIDsStrictlyIncrease(t *testing.T) {
	fixed := time.UnixMilli(1767225600000)
	g := NewOrderIDGenerator()
	g.now = func() time.Time { return fixed }

	assert.Equal(t, "ORD-1767225600000", g.Next())
	assert.Equal(t, "ORD-1767225600001", g.Next())

	fixed = fixed.Add(-time.Second)
	assert.Equal(t, "ORD-1767225600002", g.Next())

	fixed = time.UnixMilli(1767225700000)
	assert.Equal(t, "ORD-1767225700000", g.Next())
}

func TestLoadLastOrderMissing(t *testing.T) {
	_, err := LoadLastOrder(NewMemoryStorage())
	require.ErrorIs(t, err, utils.ErrNotFound)
}
