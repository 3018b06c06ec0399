// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

type CartServiceTestSuite struct {
	suite.Suite
	carts     *CartService
	wishlists *WishlistService
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}

func (s *CartServiceTestSuite) SetupTest() {
	db := setupTestDB(s.T())
	s.carts = NewCartService(db)
	s.wishlists = NewWishlistService(db)
}

func (s *CartServiceTestSuite) TestGetCartCreatesLazily() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)

	cart, err := s.carts.GetCart(user.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Equal(0.0, cart.TotalPrice)

	// Repeated fetches return the same cart
	again, err := s.carts.GetCart(user.ID)
	s.Require().NoError(err)
	s.Equal(cart.ID, again.ID)
}

func (s *CartServiceTestSuite) TestAddItemBumpsQuantityAndRefreshesPrice() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Cart Game", 40, 10)

	cart, err := s.carts.AddItem(user.ID, &AddToCartRequest{GameID: game.ID, Quantity: 1})
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(40.0, cart.Items[0].Price)
	s.InDelta(40.0, cart.TotalPrice, 0.001)

	// Price drops before the second add; the line refreshes to the new price
	s.Require().NoError(db.Model(game).Update("discount_price", 25.0).Error)

	cart, err = s.carts.AddItem(user.ID, &AddToCartRequest{GameID: game.ID, Quantity: 2})
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(3, cart.Items[0].Quantity)
	s.Equal(25.0, cart.Items[0].Price)
	s.InDelta(75.0, cart.TotalPrice, 0.001)
}

func (s *CartServiceTestSuite) TestAddItemRejectsOverStock() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Scarce Cart Game", 40, 2)

	_, err := s.carts.AddItem(user.ID, &AddToCartRequest{GameID: game.ID, Quantity: 3})
	s.Require().Error(err)
	appErr, ok := apperrors.As(err)
	s.Require().True(ok)
	s.Equal(apperrors.CodeValidation, appErr.Code)
	s.Contains(appErr.Message, "Scarce Cart Game")
}

func (s *CartServiceTestSuite) TestUpdateItemQuantity() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Resize Game", 10, 10)

	_, err := s.carts.AddItem(user.ID, &AddToCartRequest{GameID: game.ID, Quantity: 1})
	s.Require().NoError(err)

	cart, err := s.carts.UpdateItem(user.ID, game.ID, &UpdateCartItemRequest{Quantity: 4})
	s.Require().NoError(err)
	s.Require().Len(cart.Items, 1)
	s.Equal(4, cart.Items[0].Quantity)
	s.InDelta(40.0, cart.TotalPrice, 0.001)

	_, err = s.carts.UpdateItem(user.ID, game.ID, &UpdateCartItemRequest{Quantity: 99})
	s.True(apperrors.Is(err, apperrors.CodeValidation))
}

func (s *CartServiceTestSuite) TestRemoveItemIsIdempotent() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Removable Game", 10, 10)

	_, err := s.carts.AddItem(user.ID, &AddToCartRequest{GameID: game.ID, Quantity: 1})
	s.Require().NoError(err)

	cart, err := s.carts.RemoveItem(user.ID, game.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Equal(0.0, cart.TotalPrice)

	// Removing again is a no-op
	cart, err = s.carts.RemoveItem(user.ID, game.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
}

func (s *CartServiceTestSuite) TestClearCart() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "buyer", models.UserRoleUser)
	first := createTestGame(s.T(), db, "First Game", 10, 10)
	second := createTestGame(s.T(), db, "Second Game", 20, 10)

	_, err := s.carts.AddItem(user.ID, &AddToCartRequest{GameID: first.ID, Quantity: 1})
	s.Require().NoError(err)
	_, err = s.carts.AddItem(user.ID, &AddToCartRequest{GameID: second.ID, Quantity: 2})
	s.Require().NoError(err)

	cart, err := s.carts.ClearCart(user.ID)
	s.Require().NoError(err)
	s.Empty(cart.Items)
	s.Equal(0.0, cart.TotalPrice)
}

func (s *CartServiceTestSuite) TestWishlistAddIsIdempotent() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "collector", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Wished Game", 10, 10)

	wishlist, err := s.wishlists.AddGame(user.ID, game.ID)
	s.Require().NoError(err)
	s.Require().Len(wishlist.Items, 1)

	// Adding the same game again does not duplicate
	wishlist, err = s.wishlists.AddGame(user.ID, game.ID)
	s.Require().NoError(err)
	s.Len(wishlist.Items, 1)
}

func (s *CartServiceTestSuite) TestWishlistRemove() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "collector", models.UserRoleUser)
	game := createTestGame(s.T(), db, "Unwished Game", 10, 10)

	_, err := s.wishlists.AddGame(user.ID, game.ID)
	s.Require().NoError(err)

	wishlist, err := s.wishlists.RemoveGame(user.ID, game.ID)
	s.Require().NoError(err)
	s.Empty(wishlist.Items)

	// Removing a game that is not on the list is a no-op
	wishlist, err = s.wishlists.RemoveGame(user.ID, game.ID)
	s.Require().NoError(err)
	s.Empty(wishlist.Items)
}

func (s *CartServiceTestSuite) TestWishlistClear() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "collector", models.UserRoleUser)
	first := createTestGame(s.T(), db, "Wished One", 10, 10)
	second := createTestGame(s.T(), db, "Wished Two", 20, 10)

	_, err := s.wishlists.AddGame(user.ID, first.ID)
	s.Require().NoError(err)
	_, err = s.wishlists.AddGame(user.ID, second.ID)
	s.Require().NoError(err)

	wishlist, err := s.wishlists.ClearWishlist(user.ID)
	s.Require().NoError(err)
	s.Empty(wishlist.Items)
}

func (s *CartServiceTestSuite) TestWishlistRejectsUnknownGame() {
	db := s.carts.db
	user := createTestUser(s.T(), db, "collector", models.UserRoleUser)

	_, err := s.wishlists.AddGame(user.ID, uuid.New())
	s.True(apperrors.Is(err, apperrors.CodeNotFound))
}
