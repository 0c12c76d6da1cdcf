// Package authz holds the pure access decisions for the marketplace. Every
// function takes the acting user explicitly and returns nil when the action
// is permitted, domain.ErrUnauthenticated when it needs a signed-in user, or
// a *domain.AccessError when the user lacks the role or ownership.
package authz

import "github.com/Domenick1991/rente/internal/domain"

// RequireRole permits only authenticated users holding exactly the given role.
func RequireRole(user *domain.User, role domain.Role) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if user.Role != role {
		return domain.AccessDenied("no access")
	}
	return nil
}

// CanWriteListing gates collection-level listing access. Reads are open to
// anyone; writes are reserved for landlords.
func CanWriteListing(user *domain.User, write bool) error {
	if !write {
		return nil
	}
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if user.Role != domain.RoleLandlord {
		return domain.AccessDenied("only landlords can manage listings")
	}
	return nil
}

// CanModifyListing gates object-level listing access: writes require the
// owner or an admin.
func CanModifyListing(user *domain.User, write bool, listing *domain.Listing) error {
	if !write {
		return nil
	}
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if listing.OwnerID != user.ID && user.Role != domain.RoleAdmin {
		return domain.AccessDenied("no access")
	}
	return nil
}

// CanConfirmBooking permits only the owner of the booked listing.
func CanConfirmBooking(user *domain.User, booking *domain.Booking) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if booking.ListingOwnerID != user.ID {
		return domain.AccessDenied("no access")
	}
	return nil
}

// CanCancelBooking permits the tenant who made the booking or the owner of
// the booked listing.
func CanCancelBooking(user *domain.User, booking *domain.Booking) error {
	if user == nil {
		return domain.ErrUnauthenticated
	}
	if booking.TenantID != user.ID && booking.ListingOwnerID != user.ID {
		return domain.AccessDenied("no access")
	}
	return nil
}
