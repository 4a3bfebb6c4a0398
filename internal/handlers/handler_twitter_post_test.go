package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image-resizer/internal/auth"
	"image-resizer/internal/testutil"
	"image-resizer/internal/twitter"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const defaultCaption = "Check out these resized images! 🖼️ #ImageResizer"

func fakeDataURL(content string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte(content))
}

func newPostTestContext(t *testing.T, body string) *testutil.TestContext {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/twitter/post")
	tc.WithBody([]byte(body))
	tc.WithCookie(auth.CookieAccessToken, "user-token")
	return tc
}

// uploadByContent returns a media id derived from the uploaded bytes.
func uploadByContent(calls *atomic.Int32) func(context.Context, string, []byte, string) (string, error) {
	return func(_ context.Context, _ string, media []byte, _ string) (string, error) {
		calls.Add(1)
		return "media-" + string(media), nil
	}
}

func TestTwitterPost_UploadsAllAttachesFirstFourInOrder(t *testing.T) {
	// Keys deliberately out of lexical order.
	body := `{"images":{` +
		`"728x90":"` + fakeDataURL("a") + `",` +
		`"300x250":"` + fakeDataURL("b") + `",` +
		`"160x600":"` + fakeDataURL("c") + `",` +
		`"300x600":"` + fakeDataURL("d") + `",` +
		`"120x60":"` + fakeDataURL("e") + `"}}`

	tc := newPostTestContext(t, body)
	defer tc.Finish()

	var uploads atomic.Int32
	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), "user-token", gomock.Any(), "image/png").
		DoAndReturn(uploadByContent(&uploads)).Times(5)
	tc.MockTwitter.EXPECT().CreateTweet(gomock.Any(), "user-token", defaultCaption,
		[]string{"media-a", "media-b", "media-c", "media-d"}).
		Return(json.RawMessage(`{"data":{"id":"1","text":"posted"}}`), nil).Times(1)

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertContentType(t, "application/json")
	assert.Equal(t, int32(5), uploads.Load())
	assert.JSONEq(t, `{"success":true,"tweet":{"data":{"id":"1","text":"posted"}}}`, tc.GetResponseBody())
}

func TestTwitterPost_SingleImage(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"`+fakeDataURL("only")+`"}}`)
	defer tc.Finish()

	var uploads atomic.Int32
	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), "user-token", []byte("only"), "image/png").
		DoAndReturn(uploadByContent(&uploads))
	tc.MockTwitter.EXPECT().CreateTweet(gomock.Any(), "user-token", defaultCaption, []string{"media-only"}).
		Return(json.RawMessage(`{"data":{"id":"2"}}`), nil)

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusOK)
	tc.AssertJSONField(t, "success", true)
}

func TestTwitterPost_RequiresAccessToken(t *testing.T) {
	tc := testutil.NewTestContextWithURL(t, "POST", "/api/twitter/post")
	tc.WithBody([]byte(`{"images":{"300x250":"` + fakeDataURL("a") + `"}}`))
	defer tc.Finish()

	// No expectations: any upload or tweet call fails the test.
	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusUnauthorized)
	tc.AssertJSONField(t, "error", "Not authenticated. Please login with Twitter first.")
}

func TestTwitterPost_RejectsEmptyImages(t *testing.T) {
	for name, body := range map[string]string{
		"empty map":     `{"images":{}}`,
		"missing field": `{}`,
		"null images":   `{"images":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			tc := newPostTestContext(t, body)
			defer tc.Finish()

			tc.CallHandler(POSTTwitterPostHandler)

			tc.AssertStatus(t, http.StatusBadRequest)
			tc.AssertJSONField(t, "error", "No images provided")
		})
	}
}

func TestTwitterPost_RejectsMalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"truncated":        `{"images":{"a":`,
		"images not map":   `{"images":["x"]}`,
		"non string value": `{"images":{"a":42}}`,
	} {
		t.Run(name, func(t *testing.T) {
			tc := newPostTestContext(t, body)
			defer tc.Finish()

			tc.CallHandler(POSTTwitterPostHandler)

			tc.AssertStatus(t, http.StatusBadRequest)
			tc.AssertJSONField(t, "error", "Invalid request body")
		})
	}
}

func TestTwitterPost_UploadForbiddenAsksToReauthenticate(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"`+fakeDataURL("a")+`"}}`)
	defer tc.Finish()

	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), "user-token", gomock.Any(), "image/png").
		Return("", &twitter.APIError{Operation: "media_upload", StatusCode: http.StatusForbidden, Message: "missing media.write scope"})

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusForbidden)
	tc.AssertJSONField(t, "error", "Twitter authorization failed. Please reconnect your Twitter account.")
	tc.AssertJSONField(t, "details", "missing media.write scope")
	tc.AssertJSONField(t, "code", "reauthenticate")
}

func TestTwitterPost_TweetForbiddenAsksToReauthenticate(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"`+fakeDataURL("a")+`"}}`)
	defer tc.Finish()

	var uploads atomic.Int32
	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(uploadByContent(&uploads))
	tc.MockTwitter.EXPECT().CreateTweet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &twitter.APIError{Operation: "tweet_create", StatusCode: http.StatusForbidden, Message: "Forbidden"})

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusForbidden)
	tc.AssertJSONField(t, "code", "reauthenticate")
}

func TestTwitterPost_PassesThroughUpstreamStatus(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"`+fakeDataURL("a")+`"}}`)
	defer tc.Finish()

	var uploads atomic.Int32
	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(uploadByContent(&uploads))
	tc.MockTwitter.EXPECT().CreateTweet(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &twitter.APIError{Operation: "tweet_create", StatusCode: http.StatusTooManyRequests, Message: "Too Many Requests"})

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusTooManyRequests)
	tc.AssertJSONField(t, "error", "Failed to post to Twitter")
	tc.AssertJSONField(t, "details", "Too Many Requests")
	tc.AssertNoJSONField(t, "code")
}

func TestTwitterPost_NetworkFailureIs500(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"`+fakeDataURL("a")+`"}}`)
	defer tc.Finish()

	tc.MockTwitter.EXPECT().UploadMedia(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("dial tcp: connection refused"))

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
	tc.AssertJSONField(t, "error", "Failed to post to Twitter")

	response := tc.GetJSONResponse(t)
	require.Contains(t, response, "details")
	assert.Contains(t, response["details"], "connection refused")
}

func TestTwitterPost_UndecodableImageIs500WithoutTweet(t *testing.T) {
	tc := newPostTestContext(t, `{"images":{"300x250":"not-a-data-url"}}`)
	defer tc.Finish()

	tc.CallHandler(POSTTwitterPostHandler)

	tc.AssertStatus(t, http.StatusInternalServerError)
	tc.AssertJSONField(t, "error", "Failed to post to Twitter")
}

func TestOrderedImages_KeepsDocumentOrder(t *testing.T) {
	var req postRequest
	require.NoError(t, json.Unmarshal([]byte(`{"images":{"z":"1","a":"2","m":"3","a":"4"}}`), &req))

	require.Len(t, req.Images, 3)
	assert.Equal(t, namedImage{Key: "z", DataURL: "1"}, req.Images[0])
	assert.Equal(t, namedImage{Key: "a", DataURL: "4"}, req.Images[1])
	assert.Equal(t, namedImage{Key: "m", DataURL: "3"}, req.Images[2])
}
