package booking

import (
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
)

// Role selects which side of a booking a listing query filters on.
type Role string

const (
	// RoleOwner lists bookings whose item belongs to the subject.
	RoleOwner Role = "owner"
	// RoleBooker lists bookings placed by the subject.
	RoleBooker Role = "booker"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(s)) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleBooker:
		return RoleBooker, nil
	default:
		return "", ErrUnsupportedRole
	}
}

// Bucket is a named temporal/status filter used when listing bookings.
// Temporal buckets are evaluated against "now" at query time, not at
// booking-creation time.
type Bucket string

const (
	BucketAll      Bucket = "ALL"
	BucketCurrent  Bucket = "CURRENT"
	BucketPast     Bucket = "PAST"
	BucketFuture   Bucket = "FUTURE"
	BucketWaiting  Bucket = "WAITING"
	BucketRejected Bucket = "REJECTED"
)

// ParseBucket converts a raw state string into a Bucket. An empty
// string means ALL; anything unrecognized is an error, never a silent
// fallthrough.
func ParseBucket(s string) (Bucket, error) {
	if s == "" {
		return BucketAll, nil
	}
	switch Bucket(strings.ToUpper(s)) {
	case BucketAll:
		return BucketAll, nil
	case BucketCurrent:
		return BucketCurrent, nil
	case BucketPast:
		return BucketPast, nil
	case BucketFuture:
		return BucketFuture, nil
	case BucketWaiting:
		return BucketWaiting, nil
	case BucketRejected:
		return BucketRejected, nil
	default:
		return "", ErrUnsupportedBucket
	}
}

// Criteria describes one listing query: whose bookings (role + subject)
// and which bucket, classified at the given instant.
type Criteria struct {
	Role      Role
	SubjectID string
	Bucket    Bucket
	Now       time.Time
}

// conditions translates the criteria into squirrel predicates over the
// joined bookings view (b = bookings, i = items). Bucket boundaries are
// inclusive on both sides: a booking starting or ending exactly at Now
// is CURRENT.
func (c Criteria) conditions() ([]squirrel.Sqlizer, error) {
	var conds []squirrel.Sqlizer

	switch c.Role {
	case RoleOwner:
		conds = append(conds, squirrel.Eq{"i.owner_id": c.SubjectID})
	case RoleBooker:
		conds = append(conds, squirrel.Eq{"b.booker_id": c.SubjectID})
	default:
		return nil, ErrUnsupportedRole
	}

	switch c.Bucket {
	case BucketAll:
		// No temporal filter, any status.
	case BucketCurrent:
		conds = append(conds,
			squirrel.LtOrEq{"b.start_time": c.Now},
			squirrel.GtOrEq{"b.end_time": c.Now},
		)
	case BucketPast:
		conds = append(conds, squirrel.LtOrEq{"b.end_time": c.Now})
	case BucketFuture:
		conds = append(conds, squirrel.GtOrEq{"b.start_time": c.Now})
	case BucketWaiting:
		conds = append(conds, squirrel.Eq{"b.status": StatusWaiting})
	case BucketRejected:
		conds = append(conds, squirrel.Eq{"b.status": StatusRejected})
	default:
		return nil, ErrUnsupportedBucket
	}

	return conds, nil
}
