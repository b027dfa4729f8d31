package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

type subscriptionRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating subscription repository")
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *subscriptionRepository) SubscriptionExists(ctx context.Context, subscriberID, channelID string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	if err := r.db.QueryRowContext(ctx, subscriptionExists, subscriberID, channelID).Scan(&exists); err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.SubscriptionExists").Msg("error checking subscription")
		return false, r.db.mapError(err)
	}

	return exists, nil
}

// CreateSubscription inserts the edge. Duplicates surface as
// [ErrAlreadyExists], self-subscriptions as [ErrConstraintViolation].
func (r *subscriptionRepository) CreateSubscription(ctx context.Context, subscription models.Subscription) (models.Subscription, error) {
	log := logger.FromContext(ctx)

	err := r.db.QueryRowContext(ctx, createSubscription, subscription.ID, subscription.SubscriberID, subscription.ChannelID).
		Scan(&subscription.CreatedAt)
	if err != nil {
		err = r.db.mapError(err)
		if !errors.Is(err, ErrAlreadyExists) {
			log.Err(err).Str("func", "*subscriptionRepository.CreateSubscription").Msg("error creating subscription")
		}
		return models.Subscription{}, err
	}

	return subscription, nil
}

func (r *subscriptionRepository) DeleteSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	log := logger.FromContext(ctx)

	n, err := r.db.execAffected(ctx, deleteSubscription, subscriberID, channelID)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.DeleteSubscription").Msg("error deleting subscription")
		return false, err
	}

	return n > 0, nil
}

func (r *subscriptionRepository) CountSubscribers(ctx context.Context, channelIDs []string) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	if len(channelIDs) == 0 {
		return map[string]int64{}, nil
	}

	query, args, err := psql.
		Select("channel_id", "COUNT(*)").
		From("subscriptions").
		Where(sq.Eq{"channel_id": channelIDs}).
		GroupBy("channel_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.CountSubscribers").Msg("error counting subscribers")
		return nil, r.db.mapError(err)
	}

	counts, err := collectCounts(rows)
	if err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.CountSubscribers").Msg("error scanning subscriber counts")
		return nil, err
	}

	return counts, nil
}

func (r *subscriptionRepository) ListSubscribers(ctx context.Context, channelID string) ([]models.Subscription, error) {
	return r.list(ctx, "*subscriptionRepository.ListSubscribers", listSubscribers, channelID)
}

func (r *subscriptionRepository) ListSubscriptions(ctx context.Context, subscriberID string) ([]models.Subscription, error) {
	return r.list(ctx, "*subscriptionRepository.ListSubscriptions", listSubscriptions, subscriberID)
}

func (r *subscriptionRepository) list(ctx context.Context, funcName, query, id string) ([]models.Subscription, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error listing subscriptions")
		return nil, r.db.mapError(err)
	}

	subscriptions, err := collectRows(rows, scanSubscription)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning subscriptions")
		return nil, err
	}

	return subscriptions, nil
}
