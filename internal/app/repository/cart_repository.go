package repository

import (
	"github.com/ikkim/gadgetshop-backend/internal/app/model"
	"github.com/ikkim/gadgetshop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository

	Create(cart *model.Cart) error
	FindByID(id uint) (*model.Cart, error)
	// FindActiveByOwner returns every active cart of the customer. More than
	// one row means the data is corrupt; callers decide how to report it.
	FindActiveByOwner(ownerID uint) ([]model.Cart, error)
	// LockByID reads the cart with a row lock held until the transaction ends.
	LockByID(id uint) (*model.Cart, error)
	Save(cart *model.Cart) error

	CreateLine(line *model.CartLine) error
	FindLineByID(id uint) (*model.CartLine, error)
	FindLineByProduct(cartID uint, ref model.ProductRef) (*model.CartLine, error)
	FindLines(cartID uint) ([]model.CartLine, error)
	SaveLine(line *model.CartLine) error
	DeleteLine(id uint) error

	// CartIDsByProduct lists the carts holding at least one line for ref.
	CartIDsByProduct(ref model.ProductRef) ([]uint, error)
	DeleteLinesByProduct(ref model.ProductRef) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &cartRepository{db: tx}
}

func (r *cartRepository) Create(cart *model.Cart) error {
	logger.Debug("Creating cart in database", map[string]interface{}{
		"owner_id": cart.OwnerID,
	})

	if err := r.db.Omit(clause.Associations).Create(cart).Error; err != nil {
		// a concurrent creator winning the unique index is expected; keep it at debug
		logger.Debug("Failed to create cart in database", map[string]interface{}{
			"owner_id": cart.OwnerID,
			"error":    err.Error(),
		})
		return err
	}

	logger.Debug("Cart created in database", map[string]interface{}{
		"cart_id":  cart.ID,
		"owner_id": cart.OwnerID,
	})
	return nil
}

func (r *cartRepository) FindByID(id uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&cart, id).Error
	if err != nil {
		logger.Debug("Cart not found by ID in database", map[string]interface{}{
			"cart_id": id,
			"error":   err.Error(),
		})
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindActiveByOwner(ownerID uint) ([]model.Cart, error) {
	logger.Debug("Finding active carts by owner in database", map[string]interface{}{
		"owner_id": ownerID,
	})

	var carts []model.Cart
	err := r.db.Where("owner_id = ? AND in_order = ?", ownerID, false).
		Order("id ASC").
		Find(&carts).Error
	if err != nil {
		logger.Error("Failed to find active carts in database", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		return nil, err
	}
	return carts, nil
}

func (r *cartRepository) LockByID(id uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&cart, id).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Save(cart *model.Cart) error {
	if err := r.db.Omit(clause.Associations).Save(cart).Error; err != nil {
		logger.Error("Failed to update cart in database", err, map[string]interface{}{
			"cart_id": cart.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) CreateLine(line *model.CartLine) error {
	logger.Debug("Creating cart line in database", map[string]interface{}{
		"cart_id": line.CartID,
		"product": line.ProductRef.String(),
		"amount":  line.Amount,
	})

	if err := r.db.Omit(clause.Associations).Create(line).Error; err != nil {
		logger.Error("Failed to create cart line in database", err, map[string]interface{}{
			"cart_id": line.CartID,
			"product": line.ProductRef.String(),
		})
		return err
	}
	return nil
}

func (r *cartRepository) FindLineByID(id uint) (*model.CartLine, error) {
	var line model.CartLine
	if err := r.db.First(&line, id).Error; err != nil {
		logger.Debug("Cart line not found by ID in database", map[string]interface{}{
			"cart_line_id": id,
			"error":        err.Error(),
		})
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) FindLineByProduct(cartID uint, ref model.ProductRef) (*model.CartLine, error) {
	var line model.CartLine
	err := r.db.Where("cart_id = ? AND content_type = ? AND object_id = ?", cartID, ref.ContentType, ref.ObjectID).
		First(&line).Error
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *cartRepository) FindLines(cartID uint) ([]model.CartLine, error) {
	var lines []model.CartLine
	if err := r.db.Where("cart_id = ?", cartID).Order("id ASC").Find(&lines).Error; err != nil {
		logger.Error("Failed to find cart lines in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return nil, err
	}
	return lines, nil
}

func (r *cartRepository) SaveLine(line *model.CartLine) error {
	if err := r.db.Omit(clause.Associations).Save(line).Error; err != nil {
		logger.Error("Failed to update cart line in database", err, map[string]interface{}{
			"cart_line_id": line.ID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) DeleteLine(id uint) error {
	result := r.db.Delete(&model.CartLine{}, id)
	if result.Error != nil {
		logger.Error("Failed to delete cart line from database", result.Error, map[string]interface{}{
			"cart_line_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.Debug("Cart line deleted from database", map[string]interface{}{
		"cart_line_id": id,
	})
	return nil
}

func (r *cartRepository) CartIDsByProduct(ref model.ProductRef) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.CartLine{}).
		Where("content_type = ? AND object_id = ?", ref.ContentType, ref.ObjectID).
		Distinct().
		Pluck("cart_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *cartRepository) DeleteLinesByProduct(ref model.ProductRef) (int64, error) {
	result := r.db.Where("content_type = ? AND object_id = ?", ref.ContentType, ref.ObjectID).
		Delete(&model.CartLine{})
	if result.Error != nil {
		logger.Error("Failed to delete cart lines by product", result.Error, map[string]interface{}{
			"product": ref.String(),
		})
		return 0, result.Error
	}

	logger.Debug("Cart lines deleted by product", map[string]interface{}{
		"product": ref.String(),
		"count":   result.RowsAffected,
	})
	return result.RowsAffected, nil
}
