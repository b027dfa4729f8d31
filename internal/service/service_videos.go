package service

import (
	"context"

	"github.com/MKhiriev/go-video-tube/internal/logger"
	"github.com/MKhiriev/go-video-tube/internal/media"
	"github.com/MKhiriev/go-video-tube/internal/store"
	"github.com/MKhiriev/go-video-tube/internal/utils"
	"github.com/MKhiriev/go-video-tube/models"
)

type videoService struct {
	videos   store.VideoRepository
	users    store.UserRepository
	media    media.Storage
	composer *viewComposer

	idGenerator *utils.UUIDGenerator
	logger      *logger.Logger
}

func NewVideoService(storages *store.Storages, mediaStorage media.Storage, logger *logger.Logger) VideoService {
	return &videoService{
		videos:      storages.VideoRepository,
		users:       storages.UserRepository,
		media:       mediaStorage,
		composer:    newViewComposer(storages.UserRepository, storages.LikeRepository),
		idGenerator: utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// PublishVideo uploads the video file and its thumbnail and stores the video
// as published.
func (s *videoService) PublishVideo(ctx context.Context, identity models.Identity, req models.PublishVideoRequest, videoFile, thumbnail *models.Upload) (models.Video, error) {
	log := logger.FromContext(ctx)

	if videoFile == nil {
		return models.Video{}, ErrVideoFileRequired
	}
	if thumbnail == nil {
		return models.Video{}, ErrThumbnailRequired
	}

	video := models.Video{
		ID:          s.idGenerator.Generate(),
		OwnerID:     identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		IsPublished: true,
	}

	var err error
	video.VideoFile, err = s.upload(ctx, media.KindVideo, identity.UserID, *videoFile)
	if err != nil {
		return models.Video{}, err
	}
	video.Thumbnail, err = s.upload(ctx, media.KindThumbnail, identity.UserID, *thumbnail)
	if err != nil {
		discardMedia(ctx, s.media, video.VideoFile)
		return models.Video{}, err
	}

	created, err := s.videos.CreateVideo(ctx, video)
	if err != nil {
		log.Err(err).Str("func", "*videoService.PublishVideo").Str("user_id", identity.UserID).Msg("error creating video")
		discardMedia(ctx, s.media, video.VideoFile, video.Thumbnail)
		return models.Video{}, storeError(err, ErrUserNotFound)
	}

	log.Info().Str("video_id", created.ID).Str("user_id", identity.UserID).Msg("video published")
	return created, nil
}

// GetVideo hides unpublished videos from everyone but their owner.
// Recording the view is best effort: a failure is logged and the video is
// still returned.
func (s *videoService) GetVideo(ctx context.Context, viewer models.Identity, videoID string) (models.VideoView, error) {
	log := logger.FromContext(ctx)

	video, err := visibleVideo(ctx, s.videos, viewer, videoID)
	if err != nil {
		return models.VideoView{}, err
	}

	if viewer.UserID != "" {
		if err = s.videos.IncrementViews(ctx, video.ID); err != nil {
			log.Warn().Err(err).Str("video_id", video.ID).Msg("error incrementing views")
		} else {
			video.Views++
		}
		if err = s.users.AddToWatchHistory(ctx, viewer.UserID, video.ID); err != nil {
			log.Warn().Err(err).Str("video_id", video.ID).Str("user_id", viewer.UserID).Msg("error recording watch history")
		}
	}

	return s.composer.videoView(ctx, video)
}

func (s *videoService) UpdateVideo(ctx context.Context, identity models.Identity, videoID string, req models.UpdateVideoRequest) (models.Video, error) {
	log := logger.FromContext(ctx)

	video, err := s.ownedVideo(ctx, identity, videoID)
	if err != nil {
		return models.Video{}, err
	}

	oldThumbnail := video.Thumbnail
	video.Title = req.Title
	video.Description = req.Description
	if req.Thumbnail != nil {
		video.Thumbnail, err = s.upload(ctx, media.KindThumbnail, identity.UserID, *req.Thumbnail)
		if err != nil {
			return models.Video{}, err
		}
	}

	updated, err := s.videos.UpdateVideo(ctx, video)
	if err != nil {
		log.Err(err).Str("func", "*videoService.UpdateVideo").Str("video_id", videoID).Msg("error updating video")
		if req.Thumbnail != nil {
			discardMedia(ctx, s.media, video.Thumbnail)
		}
		return models.Video{}, storeError(err, ErrVideoNotFound)
	}

	if req.Thumbnail != nil {
		discardMedia(ctx, s.media, oldThumbnail)
	}
	return updated, nil
}

// DeleteVideo removes the video with its comments, its likes and the likes
// of its comments, then deletes its media objects.
func (s *videoService) DeleteVideo(ctx context.Context, identity models.Identity, videoID string) error {
	video, err := s.ownedVideo(ctx, identity, videoID)
	if err != nil {
		return err
	}

	if err = s.videos.DeleteVideo(ctx, video.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*videoService.DeleteVideo").Str("video_id", videoID).Msg("error deleting video")
		return storeError(err, ErrVideoNotFound)
	}

	discardMedia(ctx, s.media, video.VideoFile, video.Thumbnail)
	return nil
}

func (s *videoService) TogglePublish(ctx context.Context, identity models.Identity, videoID string) (models.Video, error) {
	video, err := s.ownedVideo(ctx, identity, videoID)
	if err != nil {
		return models.Video{}, err
	}

	updated, err := s.videos.SetPublished(ctx, video.ID, !video.IsPublished)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*videoService.TogglePublish").Str("video_id", videoID).Msg("error toggling publish status")
		return models.Video{}, storeError(err, ErrVideoNotFound)
	}
	return updated, nil
}

// ListVideos returns one page of published videos, optionally narrowed to a
// channel and a case-insensitive search over title and description.
func (s *videoService) ListVideos(ctx context.Context, query models.ListVideosQuery) (models.Page[models.VideoView], error) {
	page := query.PageRequest()
	filter := models.VideoFilter{
		Query:         query.Query,
		OwnerID:       query.UserID,
		PublishedOnly: true,
	}

	return listVideoViews(ctx, s.videos, s.composer, filter, page)
}

func listVideoViews(ctx context.Context, videos store.VideoRepository, composer *viewComposer, filter models.VideoFilter, page models.PageRequest) (models.Page[models.VideoView], error) {
	found, total, err := videos.ListVideos(ctx, filter, page)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "listVideoViews").Msg("error listing videos")
		return models.Page[models.VideoView]{}, storeError(err, nil)
	}

	views, err := composer.videoViews(ctx, found)
	if err != nil {
		return models.Page[models.VideoView]{}, err
	}

	return models.NewPage(views, total, page), nil
}

// visibleVideo loads a video the viewer may see. An unpublished video exists
// only for its owner, everyone else gets ErrVideoNotFound.
func visibleVideo(ctx context.Context, videos store.VideoRepository, viewer models.Identity, videoID string) (models.Video, error) {
	video, err := videos.FindVideoByID(ctx, videoID)
	if err != nil {
		return models.Video{}, storeError(err, ErrVideoNotFound)
	}
	if !video.IsPublished && video.OwnerID != viewer.UserID {
		return models.Video{}, ErrVideoNotFound
	}
	return video, nil
}

// ownedVideo loads a video and checks that identity owns it, in that order.
func (s *videoService) ownedVideo(ctx context.Context, identity models.Identity, videoID string) (models.Video, error) {
	video, err := s.videos.FindVideoByID(ctx, videoID)
	if err != nil {
		return models.Video{}, storeError(err, ErrVideoNotFound)
	}
	if err = AuthorizeOwnership(identity, video.OwnerID); err != nil {
		return models.Video{}, err
	}
	return video, nil
}

func (s *videoService) upload(ctx context.Context, kind, ownerID string, file models.Upload) (string, error) {
	location, err := s.media.Save(ctx, media.ObjectKey(kind, ownerID, file.FileName), file.Body, file.ContentType)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*videoService.upload").Str("kind", kind).Msg("error uploading file")
		return "", mediaError(err)
	}
	return location, nil
}
