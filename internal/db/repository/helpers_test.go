package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
)

// channelExistsQuery pins both halves of the uniqueness check.
const channelExistsQuery = `SELECT EXISTS\(SELECT 1 FROM channels WHERE name = \$1 OR link = \$2\)`

var (
	channelColumns = []string{"id", "channel_id", "name", "link"}
	videoColumns   = []string{"id", "video_id", "release_date", "name", "description", "channel_entity_id"}
	resolveColumns = []string{"id", "channel_id", "name", "link", "id", "video_id", "release_date", "name", "description"}
)

type storedVideo struct {
	id          int64
	videoID     uuid.UUID
	releaseDate time.Time
	name        string
	description string
}

type storedChannel struct {
	id        int64
	channelID uuid.UUID
	name      string
	link      string
	videos    []storedVideo
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// expectResolve registers the joined read the finder issues for ch.
func expectResolve(mock pgxmock.PgxPoolIface, ch storedChannel) {
	rows := pgxmock.NewRows(resolveColumns)
	if len(ch.videos) == 0 {
		rows.AddRow(ch.id, ch.channelID, ch.name, ch.link, nil, nil, nil, nil, nil)
	}
	for _, v := range ch.videos {
		v := v
		rows.AddRow(ch.id, ch.channelID, ch.name, ch.link, &v.id, &v.videoID, &v.releaseDate, &v.name, &v.description)
	}
	mock.ExpectQuery(`FROM channels c LEFT JOIN videos v ON v.channel_entity_id = c.id WHERE c.channel_id = \$1`).
		WithArgs(ch.channelID).
		WillReturnRows(rows)
}

// expectMissingChannel registers a channel lookup that finds nothing.
func expectMissingChannel(mock pgxmock.PgxPoolIface, channelID uuid.UUID) {
	mock.ExpectQuery(`FROM channels c LEFT JOIN videos v ON v.channel_entity_id = c.id WHERE c.channel_id = \$1`).
		WithArgs(channelID).
		WillReturnRows(pgxmock.NewRows(resolveColumns))
}

func andrena() storedChannel {
	return storedChannel{
		id:        1,
		channelID: uuid.New(),
		name:      "andrena",
		link:      "https://www.youtube.com/@andrenaobjects",
		videos: []storedVideo{
			{
				id:          10,
				videoID:     uuid.New(),
				releaseDate: date(2023, time.March, 14),
				name:        "Agile Testing",
				description: "A talk about testing in agile teams.",
			},
			{
				id:          11,
				videoID:     uuid.New(),
				releaseDate: date(2024, time.January, 9),
				name:        "Clean Code Days",
				description: "Highlights from the conference.",
			},
		},
	}
}
