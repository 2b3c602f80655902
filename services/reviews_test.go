package services

import (
	"testing"
	"time"

	"chef-booking-server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReviewOncePerBooking(t *testing.T) {
	db := testDB(t)
	svc := NewReviewService(db)

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")

	actor := models.Actor{ID: customer.ID, Role: models.RoleUser}

	review, created, err := svc.SubmitReview(actor, booking.ID, 4, "Great food")
	require.NoError(t, err)
	assert.True(t, created)

	// second submission returns the same review, no duplicate row
	again, created, err := svc.SubmitReview(actor, booking.ID, 1, "changed my mind")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, review.ID, again.ID)
	assert.Equal(t, 4, again.Rating)

	var count int64
	db.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitReviewAuthorization(t *testing.T) {
	db := testDB(t)
	svc := NewReviewService(db)

	owner := seedUser(t, db, "chefowner")
	customer := seedUser(t, db, "customer")
	stranger := seedUser(t, db, "stranger")
	chef := seedChef(t, db, owner, 20.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")

	_, _, err := svc.SubmitReview(models.Actor{ID: stranger.ID, Role: models.RoleUser}, booking.ID, 5, "nice")
	assert.ErrorIs(t, err, ErrPermission)

	_, _, err = svc.SubmitReview(models.Actor{ID: customer.ID, Role: models.RoleUser}, booking.ID, 6, "nice")
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = svc.SubmitReview(models.Actor{ID: customer.ID, Role: models.RoleUser}, 9999, 5, "nice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmitResponseChefOnlyAndOnce(t *testing.T) {
	db := testDB(t)
	svc := NewReviewService(db)

	owner := seedUser(t, db, "chefowner")
	otherChefOwner := seedUser(t, db, "otherchef")
	customer := seedUser(t, db, "customer")
	chef := seedChef(t, db, owner, 20.00)
	seedChef(t, db, otherChefOwner, 35.00)
	booking := seedBooking(t, db, customer, chef, testNow.Add(-72*time.Hour), "19:00")

	review, _, err := svc.SubmitReview(models.Actor{ID: customer.ID, Role: models.RoleUser}, booking.ID, 5, "excellent")
	require.NoError(t, err)

	// another chef cannot respond to this review
	_, err = svc.SubmitResponse(models.Actor{ID: otherChefOwner.ID, Role: models.RoleUser}, review.ID, "thanks!")
	assert.ErrorIs(t, err, ErrPermission)

	// neither can the customer
	_, err = svc.SubmitResponse(models.Actor{ID: customer.ID, Role: models.RoleUser}, review.ID, "thanks!")
	assert.ErrorIs(t, err, ErrPermission)

	response, err := svc.SubmitResponse(models.Actor{ID: owner.ID, Role: models.RoleUser}, review.ID, "Thank you!")
	require.NoError(t, err)
	assert.Equal(t, review.ID, response.ReviewID)

	// only one response per review
	_, err = svc.SubmitResponse(models.Actor{ID: owner.ID, Role: models.RoleUser}, review.ID, "again")
	assert.ErrorIs(t, err, ErrValidation)
}
