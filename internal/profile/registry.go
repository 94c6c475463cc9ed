// Package profile implements the profile registry: role-scoped account
// profiles (vendor, influencer, buyer), their approval state machine and the
// cascade deletion saga run before a user identity is removed.
package profile

import (
	"context"
	"math"
	"time"

	"marketplace-service/internal/apperr"
	"marketplace-service/internal/model"
	"marketplace-service/internal/notify"

	"go.uber.org/zap"
)

// ProfileInput carries optional registration fields. Zero values fall back
// to variant defaults derived from the user identity.
type ProfileInput struct {
	BusinessName         string `json:"business_name"`
	DisplayName          string `json:"display_name"`
	Username             string `json:"username"`
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Phone                string `json:"phone"`
	Description          string `json:"description"`
	Bio                  string `json:"bio"`
	Niche                string `json:"niche"`
	Website              string `json:"website"`
	NewsletterSubscribed bool   `json:"newsletter_subscribed"`
	MarketingConsent     bool   `json:"marketing_consent"`
}

// Registration is the result of a register call: the created user plus the
// profile of the requested variant.
type Registration struct {
	User       *model.User       `json:"user"`
	Role       model.Role        `json:"-"`
	Vendor     *model.Vendor     `json:"vendor,omitempty"`
	Influencer *model.Influencer `json:"influencer,omitempty"`
	Buyer      *model.Buyer      `json:"buyer,omitempty"`
}

// Registry manages account profiles. Collaborators are injected; the
// registry holds no global state.
type Registry struct {
	store    Store
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time
}

// NewRegistry builds a Registry.
func NewRegistry(store Store, notifier notify.Notifier, log *zap.Logger) *Registry {
	return &Registry{store: store, notifier: notifier, log: log, now: time.Now}
}

// UserByEmail exposes the identity lookup for the login flow.
func (r *Registry) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.store.UserByEmail(ctx, email)
}

// RegisterAccount creates the user identity and its profile as one logical
// unit. Profile creation failure triggers a compensating deletion of the
// user, so a half-registered account never blocks re-registration under the
// same email.
func (r *Registry) RegisterAccount(ctx context.Context, email, username, passwordHash string, role model.Role, input ProfileInput) (*Registration, error) {
	if role != model.RoleVendor && role != model.RoleInfluencer && role != model.RoleBuyer {
		return nil, apperr.Validationf("invalid role_type: must be one of vendor, influencer, buyer")
	}

	existing, err := r.store.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflictf("email already registered")
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
		Role:     role.String(),
	}
	if err := r.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	reg, err := r.RegisterProfile(ctx, user.ID, role, input)
	if err != nil {
		// Compensate: the user must not outlive a failed profile creation.
		if delErr := r.store.DeleteUser(ctx, user.ID); delErr != nil {
			r.log.Error("Compensating user deletion failed",
				zap.Uint("user_id", user.ID), zap.Error(delErr))
		}
		return nil, err
	}
	reg.User = user

	r.sendNotification(ctx, notify.KindRegistered, email, map[string]interface{}{
		"role":     role.String(),
		"username": username,
	})
	return reg, nil
}

// RegisterProfile creates exactly one profile of the requested variant for
// the user. At most one profile per variant per user is allowed.
func (r *Registry) RegisterProfile(ctx context.Context, userID uint, role model.Role, input ProfileInput) (*Registration, error) {
	user, err := r.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := input.Username
	if name == "" {
		name = user.Username
	}

	switch role {
	case model.RoleVendor:
		if dup, err := r.store.VendorByUser(ctx, userID); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, apperr.Conflictf("vendor profile already exists for user %d", userID)
		}
		business := input.BusinessName
		if business == "" {
			business = user.Username
		}
		vendor := &model.Vendor{
			UserID:             userID,
			BusinessName:       business,
			Username:           name,
			ContactEmail:       user.Email,
			Phone:              input.Phone,
			Description:        input.Description,
			Website:            input.Website,
			JoinedDate:         r.now(),
			Status:             model.StatusPending,
			VerificationStatus: model.VerificationUnverified,
			CommissionRate:     model.DefaultVendorCommissionRate,
		}
		if err := r.store.CreateVendor(ctx, vendor); err != nil {
			return nil, err
		}
		r.log.Info("Vendor profile registered",
			zap.Uint("user_id", userID), zap.Uint("vendor_id", vendor.ID))
		return &Registration{Role: role, Vendor: vendor}, nil

	case model.RoleInfluencer:
		if dup, err := r.store.InfluencerByUser(ctx, userID); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, apperr.Conflictf("influencer profile already exists for user %d", userID)
		}
		display := input.DisplayName
		if display == "" {
			display = user.Username
		}
		influencer := &model.Influencer{
			UserID:             userID,
			DisplayName:        display,
			Username:           name,
			ContactEmail:       user.Email,
			Phone:              input.Phone,
			Bio:                input.Bio,
			Niche:              input.Niche,
			JoinedDate:         r.now(),
			Status:             model.StatusPending,
			VerificationStatus: model.VerificationUnverified,
			CommissionRate:     model.DefaultInfluencerCommissionRate,
		}
		if err := r.store.CreateInfluencer(ctx, influencer); err != nil {
			return nil, err
		}
		r.log.Info("Influencer profile registered",
			zap.Uint("user_id", userID), zap.Uint("influencer_id", influencer.ID))
		return &Registration{Role: role, Influencer: influencer}, nil

	case model.RoleBuyer:
		if dup, err := r.store.BuyerByUser(ctx, userID); err != nil {
			return nil, err
		} else if dup != nil {
			return nil, apperr.Conflictf("buyer profile already exists for user %d", userID)
		}
		display := input.DisplayName
		if display == "" {
			display = user.Username
		}
		buyer := &model.Buyer{
			UserID:               userID,
			FirstName:            input.FirstName,
			LastName:             input.LastName,
			DisplayName:          display,
			Phone:                input.Phone,
			CustomerSince:        r.now(),
			AccountStatus:        model.AccountActive,
			NewsletterSubscribed: input.NewsletterSubscribed,
			MarketingConsent:     input.MarketingConsent,
		}
		if err := r.store.CreateBuyer(ctx, buyer); err != nil {
			return nil, err
		}
		r.log.Info("Buyer profile registered",
			zap.Uint("user_id", userID), zap.Uint("buyer_id", buyer.ID))
		return &Registration{Role: role, Buyer: buyer}, nil

	default:
		return nil, apperr.Validationf("invalid role_type: must be one of vendor, influencer, buyer")
	}
}

// Approve moves a pending, rejected or suspended profile to approved and
// marks it verified in the same update. Buyers have no approval gate.
func (r *Registry) Approve(ctx context.Context, role model.Role, profileID uint) error {
	switch role {
	case model.RoleVendor:
		vendor, err := r.store.VendorByID(ctx, profileID)
		if err != nil {
			return err
		}
		if vendor.Status == model.StatusApproved {
			return apperr.Validationf("vendor %d is already approved", profileID)
		}
		vendor.Status = model.StatusApproved
		vendor.VerificationStatus = model.VerificationVerified
		if err := r.store.SaveVendor(ctx, vendor); err != nil {
			return err
		}
		r.log.Info("Vendor approved", zap.Uint("vendor_id", profileID))
		r.sendNotification(ctx, notify.KindApproved, vendor.ContactEmail, map[string]interface{}{
			"business_name": vendor.BusinessName,
		})
		return nil

	case model.RoleInfluencer:
		influencer, err := r.store.InfluencerByID(ctx, profileID)
		if err != nil {
			return err
		}
		if influencer.Status == model.StatusApproved {
			return apperr.Validationf("influencer %d is already approved", profileID)
		}
		influencer.Status = model.StatusApproved
		influencer.VerificationStatus = model.VerificationVerified
		if err := r.store.SaveInfluencer(ctx, influencer); err != nil {
			return err
		}
		r.log.Info("Influencer approved", zap.Uint("influencer_id", profileID))
		r.sendNotification(ctx, notify.KindApproved, influencer.ContactEmail, map[string]interface{}{
			"display_name": influencer.DisplayName,
		})
		return nil

	default:
		return apperr.Validationf("approval does not apply to role %s", role)
	}
}

// Reject moves a profile to rejected and marks verification rejected.
func (r *Registry) Reject(ctx context.Context, role model.Role, profileID uint, reason string) error {
	switch role {
	case model.RoleVendor:
		vendor, err := r.store.VendorByID(ctx, profileID)
		if err != nil {
			return err
		}
		vendor.Status = model.StatusRejected
		vendor.VerificationStatus = model.VerificationRejected
		if err := r.store.SaveVendor(ctx, vendor); err != nil {
			return err
		}
		r.log.Info("Vendor rejected", zap.Uint("vendor_id", profileID), zap.String("reason", reason))
		r.sendNotification(ctx, notify.KindRejected, vendor.ContactEmail, map[string]interface{}{
			"business_name": vendor.BusinessName,
			"reason":        reason,
		})
		return nil

	case model.RoleInfluencer:
		influencer, err := r.store.InfluencerByID(ctx, profileID)
		if err != nil {
			return err
		}
		influencer.Status = model.StatusRejected
		influencer.VerificationStatus = model.VerificationRejected
		if err := r.store.SaveInfluencer(ctx, influencer); err != nil {
			return err
		}
		r.log.Info("Influencer rejected", zap.Uint("influencer_id", profileID), zap.String("reason", reason))
		r.sendNotification(ctx, notify.KindRejected, influencer.ContactEmail, map[string]interface{}{
			"display_name": influencer.DisplayName,
			"reason":       reason,
		})
		return nil

	default:
		return apperr.Validationf("rejection does not apply to role %s", role)
	}
}

// Suspend moves a profile to suspended. Verification status is left
// untouched so a later reactivation restores a verified account as
// verified.
func (r *Registry) Suspend(ctx context.Context, role model.Role, profileID uint, reason string) error {
	switch role {
	case model.RoleVendor:
		vendor, err := r.store.VendorByID(ctx, profileID)
		if err != nil {
			return err
		}
		vendor.Status = model.StatusSuspended
		if err := r.store.SaveVendor(ctx, vendor); err != nil {
			return err
		}
		r.log.Info("Vendor suspended", zap.Uint("vendor_id", profileID), zap.String("reason", reason))
		r.sendNotification(ctx, notify.KindSuspended, vendor.ContactEmail, map[string]interface{}{
			"business_name": vendor.BusinessName,
			"reason":        reason,
		})
		return nil

	case model.RoleInfluencer:
		influencer, err := r.store.InfluencerByID(ctx, profileID)
		if err != nil {
			return err
		}
		influencer.Status = model.StatusSuspended
		if err := r.store.SaveInfluencer(ctx, influencer); err != nil {
			return err
		}
		r.log.Info("Influencer suspended", zap.Uint("influencer_id", profileID), zap.String("reason", reason))
		r.sendNotification(ctx, notify.KindSuspended, influencer.ContactEmail, map[string]interface{}{
			"display_name": influencer.DisplayName,
			"reason":       reason,
		})
		return nil

	case model.RoleBuyer:
		buyer, err := r.store.BuyerByID(ctx, profileID)
		if err != nil {
			return err
		}
		buyer.AccountStatus = model.AccountSuspended
		if err := r.store.SaveBuyer(ctx, buyer); err != nil {
			return err
		}
		r.log.Info("Buyer suspended", zap.Uint("buyer_id", profileID), zap.String("reason", reason))
		r.sendNotification(ctx, notify.KindSuspended, r.userEmail(ctx, buyer.UserID), map[string]interface{}{
			"display_name": buyer.DisplayName,
			"reason":       reason,
		})
		return nil

	default:
		return apperr.Validationf("suspension does not apply to role %s", role)
	}
}

// Reactivate restores a suspended profile: vendors and influencers return to
// approved, buyers to active.
func (r *Registry) Reactivate(ctx context.Context, role model.Role, profileID uint) error {
	switch role {
	case model.RoleVendor:
		vendor, err := r.store.VendorByID(ctx, profileID)
		if err != nil {
			return err
		}
		if vendor.Status != model.StatusSuspended {
			return apperr.Validationf("vendor %d is not suspended", profileID)
		}
		vendor.Status = model.StatusApproved
		if err := r.store.SaveVendor(ctx, vendor); err != nil {
			return err
		}
		r.sendNotification(ctx, notify.KindReactivated, vendor.ContactEmail, nil)
		return nil

	case model.RoleInfluencer:
		influencer, err := r.store.InfluencerByID(ctx, profileID)
		if err != nil {
			return err
		}
		if influencer.Status != model.StatusSuspended {
			return apperr.Validationf("influencer %d is not suspended", profileID)
		}
		influencer.Status = model.StatusApproved
		if err := r.store.SaveInfluencer(ctx, influencer); err != nil {
			return err
		}
		r.sendNotification(ctx, notify.KindReactivated, influencer.ContactEmail, nil)
		return nil

	case model.RoleBuyer:
		buyer, err := r.store.BuyerByID(ctx, profileID)
		if err != nil {
			return err
		}
		if buyer.AccountStatus != model.AccountSuspended {
			return apperr.Validationf("buyer %d is not suspended", profileID)
		}
		buyer.AccountStatus = model.AccountActive
		if err := r.store.SaveBuyer(ctx, buyer); err != nil {
			return err
		}
		r.sendNotification(ctx, notify.KindReactivated, r.userEmail(ctx, buyer.UserID), nil)
		return nil

	default:
		return apperr.Validationf("reactivation does not apply to role %s", role)
	}
}

// VerifyCreator flags an influencer as a verified creator.
func (r *Registry) VerifyCreator(ctx context.Context, influencerID uint) (*model.Influencer, error) {
	influencer, err := r.store.InfluencerByID(ctx, influencerID)
	if err != nil {
		return nil, err
	}
	influencer.IsVerifiedCreator = true
	influencer.VerificationStatus = model.VerificationVerified
	if err := r.store.SaveInfluencer(ctx, influencer); err != nil {
		return nil, err
	}
	r.log.Info("Influencer marked verified creator", zap.Uint("influencer_id", influencerID))
	return influencer, nil
}

// CascadeDeleteByUser removes every profile owned by the user, then the user
// itself. Any failed deletion aborts with a CascadeFailure and leaves the
// user record in place; partial cascades are reported distinctly through the
// Completed list.
func (r *Registry) CascadeDeleteByUser(ctx context.Context, userID uint) error {
	var completed []string

	vendor, err := r.store.VendorByUser(ctx, userID)
	if err != nil {
		return err
	}
	if vendor != nil {
		if err := r.store.DeleteVendor(ctx, vendor.ID); err != nil {
			return &apperr.CascadeFailure{UserID: userID, Completed: completed, Failed: "vendor", Err: err}
		}
		completed = append(completed, "vendor")
		r.log.Info("Deleted vendor profile in cascade",
			zap.Uint("vendor_id", vendor.ID), zap.Uint("user_id", userID))
	}

	influencer, err := r.store.InfluencerByUser(ctx, userID)
	if err != nil {
		return err
	}
	if influencer != nil {
		if err := r.store.DeleteInfluencer(ctx, influencer.ID); err != nil {
			return &apperr.CascadeFailure{UserID: userID, Completed: completed, Failed: "influencer", Err: err}
		}
		completed = append(completed, "influencer")
		r.log.Info("Deleted influencer profile in cascade",
			zap.Uint("influencer_id", influencer.ID), zap.Uint("user_id", userID))
	}

	buyer, err := r.store.BuyerByUser(ctx, userID)
	if err != nil {
		return err
	}
	if buyer != nil {
		if err := r.store.DeleteBuyer(ctx, buyer.ID); err != nil {
			return &apperr.CascadeFailure{UserID: userID, Completed: completed, Failed: "buyer", Err: err}
		}
		completed = append(completed, "buyer")
		r.log.Info("Deleted buyer profile in cascade",
			zap.Uint("buyer_id", buyer.ID), zap.Uint("user_id", userID))
	}

	if err := r.store.DeleteUser(ctx, userID); err != nil {
		return &apperr.CascadeFailure{UserID: userID, Completed: completed, Failed: "user", Err: err}
	}

	r.log.Info("Cascade deletion completed", zap.Uint("user_id", userID),
		zap.Strings("deleted", completed))
	return nil
}

// RecordOrder updates a buyer's aggregates for a completed order as a single
// atomic increment (1 loyalty point per whole currency unit spent) and
// upgrades the buyer to premium once qualified.
func (r *Registry) RecordOrder(ctx context.Context, buyerID uint, amount float64) (*model.Buyer, error) {
	if amount < 0 {
		return nil, apperr.Validationf("order amount must not be negative")
	}
	if err := r.store.AddBuyerOrder(ctx, buyerID, amount, 1, int64(math.Floor(amount))); err != nil {
		return nil, err
	}

	buyer, err := r.store.BuyerByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	if !buyer.IsPremium && (buyer.TotalSpent >= 1000 || buyer.TotalOrders >= 20) {
		buyer.IsPremium = true
		if err := r.store.SaveBuyer(ctx, buyer); err != nil {
			return nil, err
		}
		r.log.Info("Buyer upgraded to premium", zap.Uint("buyer_id", buyerID))
	}
	return buyer, nil
}

// AddSales records vendor revenue via an atomic increment.
func (r *Registry) AddSales(ctx context.Context, vendorID uint, amount float64) error {
	if amount < 0 {
		return apperr.Validationf("sales amount must not be negative")
	}
	return r.store.AddVendorSales(ctx, vendorID, amount)
}

// AddEarnings records influencer commission earnings via an atomic
// increment.
func (r *Registry) AddEarnings(ctx context.Context, influencerID uint, amount float64) error {
	if amount < 0 {
		return apperr.Validationf("earnings amount must not be negative")
	}
	return r.store.AddInfluencerEarnings(ctx, influencerID, amount)
}

// userEmail resolves a profile's notification recipient through its owning
// user. Lookup failure yields an empty recipient, which skips the
// notification.
func (r *Registry) userEmail(ctx context.Context, userID uint) string {
	user, err := r.store.UserByID(ctx, userID)
	if err != nil {
		r.log.Warn("Recipient lookup failed", zap.Uint("user_id", userID), zap.Error(err))
		return ""
	}
	return user.Email
}

func (r *Registry) sendNotification(ctx context.Context, kind notify.Kind, recipient string, fields map[string]interface{}) {
	if recipient == "" {
		return
	}
	if err := r.notifier.Notify(ctx, kind, recipient, fields); err != nil {
		// Best-effort: a failed notification never rolls back the transition.
		r.log.Warn("Notification delivery failed",
			zap.String("kind", string(kind)),
			zap.String("recipient", recipient),
			zap.Error(err))
	}
}
