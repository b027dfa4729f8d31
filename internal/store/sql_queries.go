package store

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-video-tube/models"
	sq "github.com/Masterminds/squirrel"
)

// psql builds queries with PostgreSQL positional placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, email, full_name, avatar, cover_image, password_hash, refresh_token_hash, created_at, updated_at`

	createUser = `INSERT INTO users (id, username, email, full_name, avatar, cover_image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns + `;`

	findUserByID = `SELECT ` + userColumns + `
		FROM users
		WHERE id = $1;`

	findUserByLogin = `SELECT ` + userColumns + `
		FROM users
		WHERE email = $1 OR username = $2
		LIMIT 1;`

	updateAccountDetails = `UPDATE users
		SET full_name = $2, email = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns + `;`

	updatePasswordHash = `UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1;`

	updateAvatar = `UPDATE users
		SET avatar = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns + `;`

	updateCoverImage = `UPDATE users
		SET cover_image = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns + `;`

	setRefreshTokenHash = `UPDATE users
		SET refresh_token_hash = $2
		WHERE id = $1;`

	swapRefreshTokenHash = `UPDATE users
		SET refresh_token_hash = $3
		WHERE id = $1 AND refresh_token_hash = $2;`

	channelProfile = `SELECT u.id, u.username, u.full_name, u.email, u.avatar, u.cover_image,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.channel_id = u.id) AS subscribers_count,
			(SELECT COUNT(*) FROM subscriptions s WHERE s.subscriber_id = u.id) AS subscribed_to_count,
			EXISTS (SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id::text = $2) AS is_subscribed
		FROM users u
		WHERE u.username = $1;`

	addToWatchHistory = `INSERT INTO watch_history (user_id, video_id, watched_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = EXCLUDED.watched_at;`

	watchHistory = `SELECT ` + videoColumnsV + `, w.watched_at
		FROM watch_history w
		JOIN videos v ON v.id = w.video_id
		WHERE w.user_id = $1
		ORDER BY w.watched_at DESC, v.id DESC;`
)

const (
	videoColumns  = `id, owner_id, video_file, thumbnail, title, description, duration, views, is_published, created_at, updated_at`
	videoColumnsV = `v.id, v.owner_id, v.video_file, v.thumbnail, v.title, v.description, v.duration, v.views, v.is_published, v.created_at, v.updated_at`

	createVideo = `INSERT INTO videos (id, owner_id, video_file, thumbnail, title, description, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + videoColumns + `;`

	findVideoByID = `SELECT ` + videoColumns + `
		FROM videos
		WHERE id = $1;`

	updateVideo = `UPDATE videos
		SET title = $2, description = $3, thumbnail = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + videoColumns + `;`

	setVideoPublished = `UPDATE videos
		SET is_published = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + videoColumns + `;`

	incrementVideoViews = `UPDATE videos
		SET views = views + 1
		WHERE id = $1;`

	deleteVideoLikes = `DELETE FROM likes
		WHERE (target_type = 'video' AND target_id = $1)
		   OR (target_type = 'comment' AND target_id IN (SELECT id FROM comments WHERE video_id = $1));`

	deleteVideo = `DELETE FROM videos
		WHERE id = $1;`
)

const (
	commentColumns = `id, video_id, owner_id, content, created_at, updated_at`

	createComment = `INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + commentColumns + `;`

	findCommentByID = `SELECT ` + commentColumns + `
		FROM comments
		WHERE id = $1;`

	updateComment = `UPDATE comments
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + commentColumns + `;`

	deleteCommentLikes = `DELETE FROM likes
		WHERE target_type = 'comment' AND target_id = $1;`

	deleteComment = `DELETE FROM comments
		WHERE id = $1;`

	countVideoComments = `SELECT COUNT(*)
		FROM comments
		WHERE video_id = $1;`

	listVideoComments = `SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
			COALESCE(l.likes_count, 0) AS likes_count
		FROM comments c
		LEFT JOIN (
			SELECT target_id, COUNT(*) AS likes_count
			FROM likes
			WHERE target_type = 'comment'
			GROUP BY target_id
		) l ON l.target_id = c.id
		WHERE c.video_id = $1
		ORDER BY likes_count DESC, c.id DESC
		LIMIT $2 OFFSET $3;`
)

const (
	postColumns = `id, owner_id, content, created_at, updated_at`

	createPost = `INSERT INTO posts (id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING ` + postColumns + `;`

	findPostByID = `SELECT ` + postColumns + `
		FROM posts
		WHERE id = $1;`

	updatePost = `UPDATE posts
		SET content = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + postColumns + `;`

	deletePostLikes = `DELETE FROM likes
		WHERE target_type = 'post' AND target_id = $1;`

	deletePost = `DELETE FROM posts
		WHERE id = $1;`
)

const (
	playlistColumns = `id, owner_id, name, description, created_at, updated_at`

	createPlaylist = `INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + playlistColumns + `;`

	playlistSummarySelect = `SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
			COUNT(v.id) AS total_videos, COALESCE(SUM(v.views), 0) AS total_views
		FROM playlists p
		LEFT JOIN playlist_videos pv ON pv.playlist_id = p.id
		LEFT JOIN videos v ON v.id = pv.video_id AND v.is_published`

	findPlaylistByID = playlistSummarySelect + `
		WHERE p.id = $1
		GROUP BY p.id;`

	listUserPlaylists = playlistSummarySelect + `
		WHERE p.owner_id = $1
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id DESC;`

	updatePlaylist = `UPDATE playlists
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + playlistColumns + `;`

	deletePlaylist = `DELETE FROM playlists
		WHERE id = $1;`

	playlistVideos = `SELECT ` + videoColumnsV + `
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		WHERE pv.playlist_id = $1 AND v.is_published
		ORDER BY pv.position;`

	addPlaylistVideo = `INSERT INTO playlist_videos (playlist_id, video_id)
		VALUES ($1, $2);`

	removePlaylistVideo = `DELETE FROM playlist_videos
		WHERE playlist_id = $1 AND video_id = $2;`
)

const (
	likeExists = `SELECT EXISTS (
			SELECT 1 FROM likes WHERE liked_by = $1 AND target_type = $2 AND target_id = $3
		);`

	createLike = `INSERT INTO likes (id, liked_by, target_type, target_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at;`

	deleteLike = `DELETE FROM likes
		WHERE liked_by = $1 AND target_type = $2 AND target_id = $3;`

	likedVideos = `SELECT ` + videoColumnsV + `
		FROM likes l
		JOIN videos v ON v.id = l.target_id
		WHERE l.liked_by = $1 AND l.target_type = 'video' AND v.is_published
		ORDER BY l.created_at DESC, v.id DESC;`
)

const (
	subscriptionColumns = `id, subscriber_id, channel_id, created_at`

	subscriptionExists = `SELECT EXISTS (
			SELECT 1 FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
		);`

	createSubscription = `INSERT INTO subscriptions (id, subscriber_id, channel_id)
		VALUES ($1, $2, $3)
		RETURNING created_at;`

	deleteSubscription = `DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2;`

	listSubscribers = `SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE channel_id = $1
		ORDER BY created_at DESC, id DESC;`

	listSubscriptions = `SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE subscriber_id = $1
		ORDER BY created_at DESC, id DESC;`
)

const channelStats = `SELECT
		(SELECT COUNT(*) FROM videos WHERE owner_id = $1) AS video_count,
		(SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1) AS subscriber_count,
		(SELECT COUNT(*) FROM likes l JOIN videos v ON l.target_type = 'video' AND l.target_id = v.id WHERE v.owner_id = $1) AS total_likes,
		(SELECT COALESCE(SUM(views), 0) FROM videos WHERE owner_id = $1) AS total_views;`

// videoSortColumns whitelists the sortable video fields by their API names.
var videoSortColumns = map[string]string{
	"createdAt": "created_at",
	"views":     "views",
	"duration":  "duration",
	"title":     "title",
}

// orderBy returns the ORDER BY terms for page: the requested column followed
// by id in the same direction, so that ties never move rows across pages.
func orderBy(page models.PageRequest, columns map[string]string, fallback string) []string {
	column, ok := columns[page.SortField]
	if !ok {
		column = fallback
	}

	direction := "DESC"
	if page.SortDirection == models.SortAsc {
		direction = "ASC"
	}

	return []string{
		fmt.Sprintf("%s %s", column, direction),
		fmt.Sprintf("id %s", direction),
	}
}

var likePatternEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into an ILIKE pattern matching it anywhere.
func containsPattern(query string) string {
	return "%" + likePatternEscaper.Replace(query) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Avatar, &u.CoverImage,
		&u.PasswordHash, &u.RefreshTokenHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func scanVideo(row rowScanner, extra ...any) (models.Video, error) {
	var v models.Video
	dest := []any{&v.ID, &v.OwnerID, &v.VideoFile, &v.Thumbnail, &v.Title, &v.Description,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return v, err
}

func scanComment(row rowScanner, extra ...any) (models.Comment, error) {
	var c models.Comment
	dest := []any{&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return c, err
}

func scanPost(row rowScanner) (models.Post, error) {
	var p models.Post
	err := row.Scan(&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanPlaylist(row rowScanner) (models.Playlist, error) {
	var p models.Playlist
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func scanPlaylistSummary(row rowScanner) (models.PlaylistSummary, error) {
	var p models.PlaylistSummary
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&p.TotalVideos, &p.TotalViews)
	return p, err
}

func scanSubscription(row rowScanner) (models.Subscription, error) {
	var s models.Subscription
	err := row.Scan(&s.ID, &s.SubscriberID, &s.ChannelID, &s.CreatedAt)
	return s, err
}
