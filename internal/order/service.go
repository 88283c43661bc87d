package order

import (
	"errors"
	"fmt"
	"time"

	"warung-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderPaid      = errors.New("order is already paid and cannot be modified")
	ErrOrderNotPaid   = errors.New("order must be paid before it can be completed")
	ErrOrderDone      = errors.New("order is already completed")
	ErrMenuNotFound   = errors.New("menu item not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrItemDelivered  = errors.New("item is already completed")
	ErrTotalMismatch  = errors.New("total mismatch")
	ErrBranchNotFound = errors.New("branch not found")
	ErrBranchClosed   = errors.New("branch is not open")
)

// Line is one desired (menu, quantity) pair for reconciliation. Prices never
// come from the caller; they are resolved from the catalog at write time.
type Line struct {
	MenuID uint
	Qty    int
}

// lockOrder reads the order row FOR UPDATE so two concurrent writes against
// the same order serialize instead of racing. SQLite has no row locks, so the
// clause is skipped there (tests run single-threaded anyway).
func lockOrder(tx *gorm.DB, orderID string, o *models.Order) error {
	q := tx
	if tx.Dialector.Name() == "postgres" {
		q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(o, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

// Reconcile replaces an order's line set with the desired one and recomputes
// the total, all inside one transaction. The desired set is authoritative:
// lines absent from it are deleted, present ones are upserted by menu id with
// the current catalog price. If assertedTotal is non-nil and disagrees with
// the recomputed total, the whole transaction aborts and nothing is persisted.
func Reconcile(db *gorm.DB, orderID string, lines []Line, assertedTotal *int64, note *string) (*models.Order, error) {
	var result models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		if err := lockOrder(tx, orderID, &ord); err != nil {
			return err
		}
		if ord.IsPaid {
			return ErrOrderPaid
		}

		menuIDs := make([]uint, 0, len(lines))
		for _, l := range lines {
			menuIDs = append(menuIDs, l.MenuID)
		}

		// Resolve every referenced menu row up front; one absent id aborts
		// the whole write, never a partial application.
		menuByID := make(map[uint]models.Menu, len(menuIDs))
		if len(menuIDs) > 0 {
			var menus []models.Menu
			if err := tx.Where("id IN ?", menuIDs).Find(&menus).Error; err != nil {
				return err
			}
			for _, m := range menus {
				menuByID[m.ID] = m
			}
			for _, id := range menuIDs {
				if _, ok := menuByID[id]; !ok {
					return fmt.Errorf("%w: id %d", ErrMenuNotFound, id)
				}
			}
		}

		// Removal by absence: the desired set is the full set, not a patch.
		del := tx.Where("order_id = ?", orderID)
		if len(menuIDs) > 0 {
			del = del.Where("menu_id NOT IN ?", menuIDs)
		}
		if err := del.Delete(&models.Item{}).Error; err != nil {
			return err
		}

		for _, l := range lines {
			menu := menuByID[l.MenuID]

			var existing models.Item
			err := tx.Where("order_id = ? AND menu_id = ?", orderID, l.MenuID).First(&existing).Error
			switch {
			case err == nil:
				existing.Qty = l.Qty
				existing.Price = menu.Price
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				item := models.Item{
					ID:      uuid.NewString(),
					OrderID: orderID,
					MenuID:  l.MenuID,
					Qty:     l.Qty,
					Price:   menu.Price,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}

		var items []models.Item
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}

		var total int64
		for _, it := range items {
			total += int64(it.Qty) * it.Price
		}

		if assertedTotal != nil && *assertedTotal != total {
			return fmt.Errorf("%w: request total (%d) does not match calculated total (%d)",
				ErrTotalMismatch, *assertedTotal, total)
		}

		ord.Total = total
		if note != nil {
			ord.Note = *note
		}
		if err := tx.Save(&ord).Error; err != nil {
			return err
		}

		ord.Items = items
		result = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AddItem upserts a single line and recomputes the order total in the same
// transaction. The stored price is the catalog unit price at this moment.
func AddItem(db *gorm.DB, orderID string, menuID uint, qty int) (*models.Item, error) {
	var result models.Item

	err := db.Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		if err := lockOrder(tx, orderID, &ord); err != nil {
			return err
		}
		if ord.IsPaid {
			return ErrOrderPaid
		}

		var menu models.Menu
		if err := tx.First(&menu, "id = ?", menuID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMenuNotFound
			}
			return err
		}

		var item models.Item
		err := tx.Where("order_id = ? AND menu_id = ?", orderID, menuID).First(&item).Error
		switch {
		case err == nil:
			item.Qty = qty
			item.Price = menu.Price
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.Item{
				ID:      uuid.NewString(),
				OrderID: orderID,
				MenuID:  menuID,
				Qty:     qty,
				Price:   menu.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}

		var items []models.Item
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return err
		}
		var total int64
		for _, it := range items {
			total += int64(it.Qty) * it.Price
		}
		if err := tx.Model(&ord).Update("total", total).Error; err != nil {
			return err
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// MarkPaid flips the paid flag. Paying an already-paid order is a no-op, not
// an error; the flag only ever moves false -> true.
func MarkPaid(db *gorm.DB, orderID string) (*models.Order, error) {
	var ord models.Order
	if err := db.First(&ord, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !ord.IsPaid {
		ord.IsPaid = true
		if err := db.Save(&ord).Error; err != nil {
			return nil, err
		}
	}
	return &ord, nil
}

// MarkDone completes a paid order: every still-pending item is forced to
// delivered, then the done flag is set. Unpaid orders are rejected.
func MarkDone(db *gorm.DB, orderID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var ord models.Order
		if err := lockOrder(tx, orderID, &ord); err != nil {
			return err
		}
		if !ord.IsPaid {
			return ErrOrderNotPaid
		}
		if ord.IsDone {
			return ErrOrderDone
		}

		if err := tx.Model(&models.Item{}).
			Where("order_id = ? AND is_delivered = ?", orderID, false).
			Update("is_delivered", true).Error; err != nil {
			return err
		}

		return tx.Model(&ord).Update("is_done", true).Error
	})
}

// MarkItemDelivered flips one line to delivered. Repeating it is an error so
// the kitchen cannot double-apply a delivery.
func MarkItemDelivered(db *gorm.DB, itemID string) (*models.Item, error) {
	var item models.Item
	if err := db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if item.IsDelivered {
		return nil, ErrItemDelivered
	}

	if err := db.Model(&item).Update("is_delivered", true).Error; err != nil {
		return nil, err
	}
	item.IsDelivered = true
	return &item, nil
}

// OpenBranch marks the branch open and stamps the moment. Re-opening an
// already open branch just refreshes the timestamp.
func OpenBranch(db *gorm.DB, branchID uint) (*models.Branch, error) {
	var branch models.Branch
	if err := db.First(&branch, "id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	now := time.Now()
	branch.IsOpen = true
	branch.LastOpened = &now
	if err := db.Save(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func CloseBranch(db *gorm.DB, branchID uint) (*models.Branch, error) {
	var branch models.Branch
	if err := db.First(&branch, "id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, err
	}

	if err := db.Model(&branch).Update("is_open", false).Error; err != nil {
		return nil, err
	}
	branch.IsOpen = false
	return &branch, nil
}

// Create starts a customer session for a table. The owning branch must be
// open; the order id is a fresh UUID and the QR payload points the table's
// QR code at the customer-facing order URL.
func Create(db *gorm.DB, userID, branchID uint, meja int, baseURL string) (*models.Order, error) {
	var result models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var branch models.Branch
		if err := tx.First(&branch, "id = ?", branchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBranchNotFound
			}
			return err
		}
		if !branch.IsOpen {
			return ErrBranchClosed
		}

		id := uuid.NewString()
		ord := models.Order{
			ID:       id,
			Meja:     meja,
			UserID:   userID,
			BranchID: branchID,
			QR:       fmt.Sprintf("%s/order/%s", baseURL, id),
		}
		if err := tx.Create(&ord).Error; err != nil {
			return err
		}

		result = ord
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
