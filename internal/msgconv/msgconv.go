// Package msgconv translates between native message chains and the wire
// element list, including the pseudo-XML rendering used for raw_message.
package msgconv

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nextlevelbuilder/pbgate/internal/driver"
	"github.com/nextlevelbuilder/pbgate/internal/uri"
	"github.com/nextlevelbuilder/pbgate/pkg/onebot"
)

// Target is the destination of an outbound message. GroupCode 0 means a
// private conversation with Uin.
type Target struct {
	GroupCode int64
	Uin       int64
}

// ToWire renders a native chain as wire elements. Best effort; unknown
// native elements are dropped.
func ToWire(elems []driver.Element) []*onebot.Message {
	var out []*onebot.Message
	for _, e := range elems {
		switch e := e.(type) {
		case driver.Text:
			out = append(out, &onebot.Message{Type: "text", Data: map[string]string{"text": e.Content}})
		case driver.At:
			qq := "all"
			if e.Target != 0 {
				qq = strconv.FormatInt(e.Target, 10)
			}
			out = append(out, &onebot.Message{Type: "at", Data: map[string]string{"qq": qq}})
		case driver.Face:
			out = append(out, &onebot.Message{Type: "face", Data: map[string]string{"id": strconv.FormatInt(int64(e.Index), 10)}})
		case driver.GroupImage:
			out = append(out, &onebot.Message{Type: "image", Data: map[string]string{"url": e.URL}})
		case driver.FriendImage:
			out = append(out, &onebot.Message{Type: "image", Data: map[string]string{"url": e.URL}})
		}
	}
	return out
}

// Converter performs the wire to native direction, which may fetch and
// upload media.
type Converter struct {
	fetcher  *uri.Fetcher
	videoDir string
	log      *slog.Logger
}

// NewConverter returns a converter caching downloaded videos under videoDir.
func NewConverter(fetcher *uri.Fetcher, videoDir string) *Converter {
	return &Converter{
		fetcher:  fetcher,
		videoDir: videoDir,
		log:      slog.With("component", "msgconv"),
	}
}

// ToNative converts wire elements to a native chain, uploading media through
// client as needed. Failures are logged and the element skipped; conversion
// never fails as a whole.
func (c *Converter) ToNative(ctx context.Context, client driver.Client, target Target, msgs []*onebot.Message, autoEscape bool) []driver.Element {
	var out []driver.Element
	for _, m := range msgs {
		switch m.Type {
		case "text":
			text := m.Data["text"]
			if autoEscape {
				out = append(out, driver.Text{Content: text})
				continue
			}
			// CQ-style rich text: parse the payload as pseudo-XML and
			// convert the fragments as literal elements.
			out = append(out, c.ToNative(ctx, client, target, FromXML(text), true)...)
		case "at":
			out = append(out, convertAt(m.Data))
		case "face":
			id, err := strconv.ParseInt(m.Data["id"], 10, 32)
			if err != nil {
				c.log.Warn("bad face id", "id", m.Data["id"])
				continue
			}
			out = append(out, driver.Face{Index: int32(id)})
		case "image":
			if elem := c.uploadImage(ctx, client, target, m.Data["url"]); elem != nil {
				out = append(out, elem)
			}
		case "video":
			if elem := c.uploadVideo(ctx, client, target, m.Data); elem != nil {
				out = append(out, elem)
			}
		default:
			c.log.Warn("unsupported outbound element dropped", "type", m.Type)
		}
	}
	return out
}

func convertAt(data map[string]string) driver.Element {
	qq := data["qq"]
	if qq == "all" {
		return driver.At{Target: 0, Display: "@全体成员"}
	}
	target, err := strconv.ParseInt(qq, 10, 64)
	if err != nil {
		return driver.Text{Content: data["display"]}
	}
	display := data["display"]
	if display == "" {
		display = "@" + qq
	}
	return driver.At{Target: target, Display: display}
}

func (c *Converter) uploadImage(ctx context.Context, client driver.Client, target Target, url string) driver.Element {
	data, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		c.log.Warn("fetch image failed", "url", url, "error", err)
		return nil
	}
	var elem driver.Element
	if target.GroupCode != 0 {
		elem, err = client.UploadGroupImage(ctx, target.GroupCode, data)
	} else {
		elem, err = client.UploadFriendImage(ctx, target.Uin, data)
	}
	if err != nil {
		c.log.Warn("upload image failed", "url", url, "error", err)
		return nil
	}
	return elem
}

func (c *Converter) uploadVideo(ctx context.Context, client driver.Client, target Target, data map[string]string) driver.Element {
	if target.GroupCode == 0 {
		c.log.Warn("video elements are group-only, dropped")
		return nil
	}
	cover, err := c.fetcher.Fetch(ctx, data["cover"])
	if err != nil {
		c.log.Warn("fetch video cover failed", "url", data["cover"], "error", err)
		return nil
	}
	video, err := c.fetchVideo(ctx, data["url"], data["cache"] == "1")
	if err != nil {
		c.log.Warn("fetch video failed", "url", data["url"], "error", err)
		return nil
	}
	elem, err := client.UploadGroupShortVideo(ctx, target.GroupCode, video, cover)
	if err != nil {
		c.log.Warn("upload video failed", "error", err)
		return nil
	}
	return elem
}

// fetchVideo downloads the video, optionally reusing and maintaining an
// on-disk cache keyed by the md5 of the url.
func (c *Converter) fetchVideo(ctx context.Context, url string, cache bool) ([]byte, error) {
	var path string
	if cache && c.videoDir != "" {
		sum := md5.Sum([]byte(url))
		path = filepath.Join(c.videoDir, hex.EncodeToString(sum[:])+".mp4")
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	data, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := os.MkdirAll(c.videoDir, 0o755); err == nil {
			if err := os.WriteFile(path, data, 0o644); err != nil {
				c.log.Warn("persist video cache failed", "path", path, "error", err)
			}
		}
	}
	return data, nil
}
