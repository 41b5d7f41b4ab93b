package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/accounts/account-service/internal/core/domain"
)

func TestAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert normalizes email", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
		got, err := repo.Insert(context.Background(), &domain.Account{
			Email: " A@B.Com ", Name: "Ann Lee", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			mt.Fatalf("insert: %v", err)
		}
		if got.Email != "a@b.com" || got.Name != "Ann Lee" || got.ID == "" {
			mt.Fatalf("unexpected account: %+v", got)
		}
		if _, err := primitive.ObjectIDFromHex(got.ID); err != nil {
			mt.Fatalf("expected hex object id, got %q", got.ID)
		}
		if !got.CreatedAt.Equal(now) || got.CreatedAt.Location() != time.UTC {
			mt.Fatalf("expected UTC timestamp, got %v", got.CreatedAt)
		}
	})

	mt.Run("duplicate key is a conflict", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: accounts index: email_unique",
		}))

		_, err := repo.Insert(context.Background(), &domain.Account{Email: "a@b.com"})
		if !errors.Is(err, domain.ErrAccountConflict) {
			mt.Fatalf("expected ErrAccountConflict, got %v", err)
		}
	})

	mt.Run("other write errors are wrapped", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad value",
		}))

		_, err := repo.Insert(context.Background(), &domain.Account{Email: "a@b.com"})
		if err == nil || errors.Is(err, domain.ErrAccountConflict) {
			mt.Fatalf("expected a non-conflict error, got %v", err)
		}
	})

	mt.Run("find returns the stored account", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)
		id := primitive.NewObjectID()
		ns := mt.DB.Name() + "." + accountsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@b.com"},
			{Key: "name", Value: "Ann Lee"},
			{Key: "password_hash", Value: "hash"},
		}))

		got, err := repo.FindByNormalizedEmail(context.Background(), "A@B.COM")
		if err != nil {
			mt.Fatalf("find: %v", err)
		}
		if got.ID != id.Hex() || got.Email != "a@b.com" || got.PasswordHash != "hash" {
			mt.Fatalf("unexpected account: %+v", got)
		}

		if evt := mt.GetStartedEvent(); evt != nil {
			filter, ok := evt.Command.Lookup("filter").DocumentOK()
			if !ok {
				mt.Fatalf("find command without filter: %v", evt.Command)
			}
			if email := filter.Lookup("email").StringValue(); email != "a@b.com" {
				mt.Fatalf("expected normalized lookup, got %q", email)
			}
		}
	})

	mt.Run("find without match is not found", func(mt *mtest.T) {
		repo := NewAccountRepository(mt.DB)
		ns := mt.DB.Name() + "." + accountsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByNormalizedEmail(context.Background(), "a@b.com")
		if !errors.Is(err, domain.ErrAccountNotFound) {
			mt.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
