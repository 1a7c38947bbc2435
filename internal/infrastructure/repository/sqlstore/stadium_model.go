package sqlstore

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/maxbat99/probax/internal/domain/stadium"
)

const stadiumCacheTable = "stadium_cache"

type stadiumTableModel struct {
	EntityID  string  `db:"entity_id"`
	Name      string  `db:"name"`
	Country   string  `db:"country"`
	Lat       float64 `db:"lat"`
	Lon       float64 `db:"lon"`
	Aliases   string  `db:"aliases"`
	UpdatedAt int64   `db:"updated_at"`
}

func stadiumModelFromEntity(e stadium.Entity) (stadiumTableModel, error) {
	aliases := stadium.NormalizeAliases(e.Aliases)
	raw, err := sonic.MarshalString(aliases)
	if err != nil {
		return stadiumTableModel{}, fmt.Errorf("encode aliases for %s: %w", e.EntityID, err)
	}
	return stadiumTableModel{
		EntityID:  e.EntityID,
		Name:      e.Name,
		Country:   e.Country,
		Lat:       e.Lat,
		Lon:       e.Lon,
		Aliases:   raw,
		UpdatedAt: e.UpdatedAt.Unix(),
	}, nil
}

func (m stadiumTableModel) toEntity() (stadium.Entity, error) {
	var aliases []string
	if m.Aliases != "" {
		if err := sonic.UnmarshalString(m.Aliases, &aliases); err != nil {
			return stadium.Entity{}, fmt.Errorf("decode aliases for %s: %w", m.EntityID, err)
		}
	}
	return stadium.Entity{
		EntityID:  m.EntityID,
		Name:      m.Name,
		Country:   m.Country,
		Lat:       m.Lat,
		Lon:       m.Lon,
		Aliases:   aliases,
		UpdatedAt: time.Unix(m.UpdatedAt, 0).UTC(),
	}, nil
}
