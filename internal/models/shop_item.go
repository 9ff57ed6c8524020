package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ShopItem struct {
	bun.BaseModel `bun:"table:shop_item"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Name          string    `bun:"name" json:"name"`
	Price         int       `bun:"price" json:"price"`
	RoleRef       *int64    `bun:"role_ref" json:"role_ref"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// PurchaseResult carries the grant the collaborator must deliver after a
// successful purchase. Intent is a role grant when the item has a role
// attached, a notification otherwise.
type PurchaseResult struct {
	Item   *ShopItem     `json:"item"`
	Coins  int           `json:"coins"`
	Intent *RewardIntent `json:"intent,omitempty"`
}
