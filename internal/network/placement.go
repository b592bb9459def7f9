package network

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"altura-network/internal/commission"
	"altura-network/internal/database/models"
)

const (
	positionLeft  int16 = 0
	positionRight int16 = 1
)

// Service owns the binary placement tree: it attaches new recruits to the
// first free slot under their sponsor and rebuilds the tree for reads.
// The commission core only ever reads the assembled tree.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// PlaceUnder attaches userID to the first free left/right slot found
// breadth-first under sponsorID.
func (s *Service) PlaceUnder(ctx context.Context, userID, sponsorID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.NetworkPlacement
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == nil {
			return fmt.Errorf("user %d is already placed", userID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var placements []models.NetworkPlacement
		if err := tx.Find(&placements).Error; err != nil {
			return err
		}

		parentID, position, ok := firstOpenSlot(placements, sponsorID)
		if !ok {
			return fmt.Errorf("no open slot under sponsor %d", sponsorID)
		}

		return tx.Create(&models.NetworkPlacement{
			UserID:   userID,
			ParentID: parentID,
			Position: position,
		}).Error
	})
}

// NetworkTree assembles the binary tree rooted at userID from placement
// rows. A user with no downline yields a single-node tree.
func (s *Service) NetworkTree(ctx context.Context, userID int64) (*commission.NetworkMember, error) {
	var placements []models.NetworkPlacement
	if err := s.db.WithContext(ctx).Find(&placements).Error; err != nil {
		return nil, fmt.Errorf("failed to load placements: %w", err)
	}
	return assembleTree(placements, userID), nil
}

// firstOpenSlot walks the subtree under sponsorID breadth-first and
// returns the first parent with a free child position. Left fills before
// right at each node.
func firstOpenSlot(placements []models.NetworkPlacement, sponsorID int64) (int64, int16, bool) {
	children := childIndex(placements)

	queue := []int64{sponsorID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		slots := children[current]
		if slots[positionLeft] == 0 {
			return current, positionLeft, true
		}
		if slots[positionRight] == 0 {
			return current, positionRight, true
		}
		queue = append(queue, slots[positionLeft], slots[positionRight])
	}
	return 0, 0, false
}

func assembleTree(placements []models.NetworkPlacement, rootID int64) *commission.NetworkMember {
	children := childIndex(placements)
	return buildNode(children, rootID)
}

func buildNode(children map[int64][2]int64, userID int64) *commission.NetworkMember {
	node := &commission.NetworkMember{UserID: userID}
	slots := children[userID]
	if slots[positionLeft] != 0 {
		node.Left = buildNode(children, slots[positionLeft])
	}
	if slots[positionRight] != 0 {
		node.Right = buildNode(children, slots[positionRight])
	}
	return node
}

func childIndex(placements []models.NetworkPlacement) map[int64][2]int64 {
	children := make(map[int64][2]int64, len(placements))
	for _, p := range placements {
		slots := children[p.ParentID]
		if p.Position == positionLeft {
			slots[positionLeft] = p.UserID
		} else {
			slots[positionRight] = p.UserID
		}
		children[p.ParentID] = slots
	}
	return children
}
