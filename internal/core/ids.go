// Package core defines the value types shared by every match-engine
// package: identifiers, player attributes, runtime state, and the tuning
// block. Nothing here touches the filesystem, network, or a clock.
package core

import "fmt"

// TeamID is an opaque team identifier. Equality is value-equality.
type TeamID int

// PlayerID is an opaque player identifier. Equality is value-equality.
type PlayerID int

func (t TeamID) String() string   { return fmt.Sprintf("team#%d", int(t)) }
func (p PlayerID) String() string { return fmt.Sprintf("player#%d", int(p)) }

// Role is a player's primary position.
type Role string

const (
	RoleKeyDefender Role = "key_defender"
	RoleDefender    Role = "defender"
	RoleWing        Role = "wing"
	RoleCenter      Role = "center"
	RoleMidfielder  Role = "midfielder"
	RoleRuckRover   Role = "ruck_rover"
	RoleForward     Role = "forward"
	RoleKeyForward  Role = "key_forward"
	RoleRuck        Role = "ruck"
	RoleUtility     Role = "utility"
)

// Bucket groups a Role's fine-grained sub-role into the four selection
// buckets the auto-selector balances against (spec §4.6).
func (r Role) Bucket() Bucket {
	switch r {
	case RoleKeyDefender, RoleDefender:
		return BucketDefender
	case RoleWing, RoleCenter, RoleMidfielder:
		return BucketMidfielder
	case RoleForward, RoleKeyForward:
		return BucketForward
	case RoleRuck, RoleRuckRover, RoleUtility:
		return BucketRuck
	default:
		return BucketMidfielder
	}
}

// Bucket is one of the four coarse position groups used for team balance.
type Bucket string

const (
	BucketDefender   Bucket = "defender"
	BucketMidfielder Bucket = "midfielder"
	BucketForward    Bucket = "forward"
	BucketRuck       Bucket = "ruck"
)
