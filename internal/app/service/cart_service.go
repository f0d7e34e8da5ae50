package service

import (
	"errors"
	"math"

	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/internal/app/repository"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService interface {
	// GetOrCreateActiveCart returns the customer's single active cart,
	// creating an empty one if none exists.
	GetOrCreateActiveCart(customerID uint) (*model.Cart, error)
	// AddLine adds amount units of the referenced product. Adding a product
	// the cart already holds increments the existing line.
	AddLine(cartID uint, ref model.ProductRef, amount int) (*model.CartLine, error)
	SetLineAmount(cartID, lineID uint, amount int) (*model.CartLine, error)
	RemoveLine(cartID, lineID uint) error
	// ViewCart returns the active cart with every line's product resolved.
	ViewCart(customerID uint) (*model.Cart, error)
	MarkOrdered(cartID uint) (*model.Cart, error)
}

type cartService struct {
	db           *gorm.DB
	customerRepo repository.CustomerRepository
	cartRepo     repository.CartRepository
	registry     *repository.ProductRegistry
}

func NewCartService(
	db *gorm.DB,
	customerRepo repository.CustomerRepository,
	cartRepo repository.CartRepository,
	registry *repository.ProductRegistry,
) CartService {
	return &cartService{
		db:           db,
		customerRepo: customerRepo,
		cartRepo:     cartRepo,
		registry:     registry,
	}
}

func (s *cartService) GetOrCreateActiveCart(customerID uint) (*model.Cart, error) {
	if _, err := s.customerRepo.FindByID(customerID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	cart, err := s.findActiveCart(customerID)
	if err == nil || !errors.Is(err, ErrCartNotFound) {
		return cart, err
	}

	cart = model.NewActiveCart(customerID)
	if err := s.cartRepo.Create(cart); err != nil {
		if !repository.IsDuplicateKey(err) {
			logger.Error("Failed to create cart", err, map[string]interface{}{
				"customer_id": customerID,
			})
			return nil, err
		}
		// another request created the cart first
		logger.Debug("Lost active cart creation race, re-reading", map[string]interface{}{
			"customer_id": customerID,
		})
		return s.findActiveCart(customerID)
	}

	logger.Info("Active cart created", map[string]interface{}{
		"customer_id": customerID,
		"cart_id":     cart.ID,
	})
	cart.Lines = []model.CartLine{}
	return cart, nil
}

func (s *cartService) findActiveCart(customerID uint) (*model.Cart, error) {
	carts, err := s.cartRepo.FindActiveByOwner(customerID)
	if err != nil {
		return nil, err
	}

	switch len(carts) {
	case 0:
		return nil, ErrCartNotFound
	case 1:
		return s.cartRepo.FindByID(carts[0].ID)
	default:
		logger.Error("Customer has several active carts", ErrMultipleActiveCarts, map[string]interface{}{
			"customer_id": customerID,
			"count":       len(carts),
		})
		return nil, ErrMultipleActiveCarts
	}
}

// lockOpenCart reads the cart FOR UPDATE and refuses ordered carts.
func lockOpenCart(carts repository.CartRepository, cartID uint) (*model.Cart, error) {
	cart, err := carts.LockByID(cartID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	if cart.InOrder {
		return nil, ErrCartClosed
	}
	return cart, nil
}

func resolveRef(registry *repository.ProductRegistry, ref model.ProductRef) (model.Product, error) {
	product, err := registry.Resolve(ref)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownVariant) || repository.IsNotFound(err) {
			logger.Warn("Dangling product reference", map[string]interface{}{
				"product": ref.String(),
			})
			return nil, ErrDanglingReference
		}
		return nil, err
	}
	return product, nil
}

func lineTotal(price decimal.Decimal, amount int) (decimal.Decimal, error) {
	total := price.Mul(decimal.NewFromInt(int64(amount)))
	if total.IsNegative() {
		return decimal.Zero, invalid("amount", "line total must not be negative")
	}
	if total.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, invalid("amount", "line total does not fit the price column")
	}
	return total, nil
}

// recomputeCart rewrites the cart's line count and final price from its lines.
// It must run inside the transaction that changed the lines.
func recomputeCart(carts repository.CartRepository, cartID uint) (*model.Cart, error) {
	cart, err := carts.LockByID(cartID)
	if err != nil {
		return nil, err
	}
	lines, err := carts.FindLines(cartID)
	if err != nil {
		return nil, err
	}

	final := decimal.Zero
	for _, line := range lines {
		final = final.Add(line.TotalPrice)
	}
	if final.GreaterThanOrEqual(maxPrice) {
		return nil, invalid("final_price", "cart total does not fit the price column")
	}

	cart.TotalLineCount = len(lines)
	cart.FinalPrice = final
	if err := carts.Save(cart); err != nil {
		return nil, err
	}
	cart.Lines = lines
	return cart, nil
}

func (s *cartService) AddLine(cartID uint, ref model.ProductRef, amount int) (*model.CartLine, error) {
	logger.Info("Adding line to cart", map[string]interface{}{
		"cart_id": cartID,
		"product": ref.String(),
		"amount":  amount,
	})

	if amount <= 0 {
		return nil, invalid("amount", "must be positive")
	}

	var line *model.CartLine
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		cart, err := lockOpenCart(carts, cartID)
		if err != nil {
			return err
		}
		product, err := resolveRef(s.registry.WithTx(tx), ref)
		if err != nil {
			return err
		}

		line, err = carts.FindLineByProduct(cartID, ref)
		switch {
		case err == nil:
			if amount > math.MaxInt-line.Amount {
				return invalid("amount", "line amount is too large")
			}
			line.Amount += amount
		case repository.IsNotFound(err):
			line = &model.CartLine{
				CustomerID: cart.OwnerID,
				CartID:     cartID,
				ProductRef: ref,
				Amount:     amount,
			}
		default:
			return err
		}

		if line.TotalPrice, err = lineTotal(product.Common().Price, line.Amount); err != nil {
			return err
		}
		if line.ID == 0 {
			err = carts.CreateLine(line)
		} else {
			err = carts.SaveLine(line)
		}
		if err != nil {
			return err
		}

		line.Product = product
		_, err = recomputeCart(carts, cartID)
		return err
	})
	if err != nil {
		logger.Warn("Failed to add line to cart", map[string]interface{}{
			"cart_id": cartID,
			"product": ref.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	logger.Info("Cart line saved", map[string]interface{}{
		"cart_id":      cartID,
		"cart_line_id": line.ID,
		"amount":       line.Amount,
	})
	return line, nil
}

func (s *cartService) SetLineAmount(cartID, lineID uint, amount int) (*model.CartLine, error) {
	logger.Info("Updating cart line amount", map[string]interface{}{
		"cart_id":      cartID,
		"cart_line_id": lineID,
		"amount":       amount,
	})

	if amount <= 0 {
		return nil, invalid("amount", "must be positive")
	}

	var line *model.CartLine
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		if _, err := lockOpenCart(carts, cartID); err != nil {
			return err
		}

		var err error
		line, err = carts.FindLineByID(lineID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCartLineNotFound
			}
			return err
		}
		if line.CartID != cartID {
			return ErrCartLineNotFound
		}

		product, err := resolveRef(s.registry.WithTx(tx), line.ProductRef)
		if err != nil {
			return err
		}
		line.Amount = amount
		if line.TotalPrice, err = lineTotal(product.Common().Price, amount); err != nil {
			return err
		}
		if err := carts.SaveLine(line); err != nil {
			return err
		}

		line.Product = product
		_, err = recomputeCart(carts, cartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

func (s *cartService) RemoveLine(cartID, lineID uint) error {
	logger.Info("Removing line from cart", map[string]interface{}{
		"cart_id":      cartID,
		"cart_line_id": lineID,
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		if _, err := lockOpenCart(carts, cartID); err != nil {
			return err
		}

		line, err := carts.FindLineByID(lineID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrCartLineNotFound
			}
			return err
		}
		if line.CartID != cartID {
			logger.Warn("Cart line belongs to another cart", map[string]interface{}{
				"cart_id":      cartID,
				"cart_line_id": lineID,
			})
			return ErrCartLineNotFound
		}

		if err := carts.DeleteLine(lineID); err != nil {
			return err
		}
		_, err = recomputeCart(carts, cartID)
		return err
	})
}

func (s *cartService) ViewCart(customerID uint) (*model.Cart, error) {
	cart, err := s.findActiveCart(customerID)
	if err != nil {
		return nil, err
	}

	for i := range cart.Lines {
		product, err := resolveRef(s.registry, cart.Lines[i].ProductRef)
		if err != nil {
			return nil, err
		}
		cart.Lines[i].Product = product
	}

	logger.Debug("Cart loaded", map[string]interface{}{
		"customer_id": customerID,
		"cart_id":     cart.ID,
		"lines":       len(cart.Lines),
	})
	return cart, nil
}

// MarkOrdered closes the cart. Order placement itself lives elsewhere; this
// only releases the active-cart slot so the customer gets a fresh cart next.
func (s *cartService) MarkOrdered(cartID uint) (*model.Cart, error) {
	var cart *model.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		carts := s.cartRepo.WithTx(tx)

		var err error
		if cart, err = lockOpenCart(carts, cartID); err != nil {
			return err
		}
		cart.InOrder = true
		cart.ActiveOwnerID = nil
		return carts.Save(cart)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cart marked as ordered", map[string]interface{}{
		"cart_id":  cartID,
		"owner_id": cart.OwnerID,
	})
	return cart, nil
}
