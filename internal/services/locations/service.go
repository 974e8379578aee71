package locations

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/xelth-com/eckslotgo/internal/address"
	"github.com/xelth-com/eckslotgo/internal/models"
	"github.com/xelth-com/eckslotgo/internal/repository"
	"github.com/xelth-com/eckslotgo/internal/utils"
)

// View is a location together with its canonical address
type View struct {
	Address    string          `json:"address"`
	AisleLabel string          `json:"aisleLabel"`
	IsPicking  bool            `json:"isPicking"`
	Available  bool            `json:"available"`
	Location   models.Location `json:"location"`
}

// ContextView is the neighbourhood of a location: nearby aisle sides with
// nearby positions
type ContextView struct {
	Address string        `json:"address"`
	Cell    int           `json:"cell"`
	Aisles  []ContextSide `json:"aisles"`
}

// ContextSide is one aisle side of a ContextView
type ContextSide struct {
	Number int           `json:"number"`
	Side   address.Side  `json:"side"`
	Label  string        `json:"label"`
	Slots  []ContextSlot `json:"slots"`
}

// ContextSlot marks the requested location with Current
type ContextSlot struct {
	Address   string `json:"address"`
	Position  int    `json:"position"`
	Level     int    `json:"level"`
	IsPicking bool   `json:"isPicking"`
	Blocked   bool   `json:"blocked"`
	Current   bool   `json:"current"`
}

// Service resolves addresses and changes the block state of locations
type Service struct {
	db    *gorm.DB
	cache *address.FormatCache
}

func NewService(db *gorm.DB, cache *address.FormatCache) *Service {
	if cache == nil {
		cache = address.NewFormatCache(0)
	}
	return &Service{db: db, cache: cache}
}

// Lookup parses a (possibly short form) address or a scanned label code
// and loads its location
func (s *Service) Lookup(ctx context.Context, raw string) (*View, error) {
	if utils.IsLabelCode(raw) {
		code, err := utils.DecodeLabelCode(raw)
		if err != nil {
			return nil, &address.ParseError{Input: raw, Code: address.ErrInvalidFormat}
		}
		raw = code.Address
	}
	a, err := address.Parse(raw)
	if err != nil {
		return nil, err
	}
	loc, err := repository.NewLocationRepository(s.db).FindByAddress(ctx, a)
	if err != nil {
		return nil, err
	}
	return s.view(loc, a), nil
}

// Block attaches reasonID to the location
func (s *Service) Block(ctx context.Context, locationID, reasonID uint) (*View, error) {
	return s.mutate(ctx, locationID, func(tx *gorm.DB, loc *models.Location) error {
		reason, err := repository.NewBlockReasonRepository(tx).FindByID(ctx, reasonID)
		if err != nil {
			return err
		}
		if err := loc.Block(reason.ID); err != nil {
			return fmt.Errorf("location id %d: %w", loc.ID, err)
		}
		loc.BlockReason = reason
		return nil
	})
}

// Unblock clears the block reason of the location
func (s *Service) Unblock(ctx context.Context, locationID uint) (*View, error) {
	return s.mutate(ctx, locationID, func(_ *gorm.DB, loc *models.Location) error {
		if err := loc.Unblock(); err != nil {
			return fmt.Errorf("location id %d: %w", loc.ID, err)
		}
		return nil
	})
}

func (s *Service) mutate(ctx context.Context, locationID uint, change func(tx *gorm.DB, loc *models.Location) error) (*View, error) {
	var view *View
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locations := repository.NewLocationRepository(tx)

		loc, err := locations.FindByID(ctx, locationID)
		if err != nil {
			return err
		}
		if err := change(tx, loc); err != nil {
			return err
		}
		if err := locations.Update(ctx, loc); err != nil {
			return err
		}

		a, err := s.resolve(ctx, tx, loc)
		if err != nil {
			return err
		}
		view = s.view(loc, a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Context returns the locations around raw: two aisles and five positions
// either way, all levels
func (s *Service) Context(ctx context.Context, raw string) (*ContextView, error) {
	a, err := address.Parse(raw)
	if err != nil {
		return nil, err
	}
	locations := repository.NewLocationRepository(s.db)
	if _, err := locations.FindByAddress(ctx, a); err != nil {
		return nil, err
	}
	cell, err := locations.Neighbourhood(ctx, a)
	if err != nil {
		return nil, err
	}

	out := &ContextView{Address: s.cache.Format(a), Cell: cell.Number, Aisles: make([]ContextSide, 0, len(cell.Aisles))}
	for _, aisle := range cell.Aisles {
		number, err := aisle.AisleNumber()
		if err != nil {
			return nil, err
		}
		side := ContextSide{Number: aisle.Number, Side: aisle.Side, Label: aisle.Label()}
		for i := range aisle.Locations {
			loc := &aisle.Locations[i]
			full, err := loc.FullAddress(a.Cell, number)
			if err != nil {
				return nil, err
			}
			side.Slots = append(side.Slots, ContextSlot{
				Address:   s.cache.Format(full),
				Position:  loc.Position,
				Level:     loc.Level,
				IsPicking: loc.PickingEnabled,
				Blocked:   loc.IsBlocked(),
				Current:   full == a,
			})
		}
		out.Aisles = append(out.Aisles, side)
	}
	return out, nil
}

// resolve walks up from a location to its aisle and cell numbers
func (s *Service) resolve(ctx context.Context, tx *gorm.DB, loc *models.Location) (address.FullAddress, error) {
	aisle, err := repository.NewAisleRepository(tx).FindByID(ctx, loc.AisleID)
	if err != nil {
		return address.FullAddress{}, err
	}
	cell, err := repository.NewCellRepository(tx).FindByID(ctx, aisle.CellID)
	if err != nil {
		return address.FullAddress{}, err
	}
	cellNumber, err := cell.CellNumber()
	if err != nil {
		return address.FullAddress{}, err
	}
	aisleNumber, err := aisle.AisleNumber()
	if err != nil {
		return address.FullAddress{}, err
	}
	return loc.FullAddress(cellNumber, aisleNumber)
}

func (s *Service) view(loc *models.Location, a address.FullAddress) *View {
	aisle := models.Aisle{Number: a.Aisle.Int(), Side: a.Side()}
	return &View{
		Address:    s.cache.Format(a),
		AisleLabel: aisle.Label(),
		IsPicking:  loc.IsPicking(),
		Available:  loc.IsAvailable(),
		Location:   *loc,
	}
}
