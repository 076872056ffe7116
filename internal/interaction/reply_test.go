package interaction

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyRender(t *testing.T) {
	tests := []struct {
		name       string
		reply      Reply
		wantStatus int
		wantBody   string
		wantOut    string
	}{
		{name: "pong", reply: Pong(), wantStatus: http.StatusOK, wantBody: `{"type":1}`, wantOut: "pong"},
		{name: "message", reply: Message("ヽ༼ຈل͜ຈ༽ﾉ"), wantStatus: http.StatusOK, wantBody: `{"type":4,"data":{"content":"ヽ༼ຈل͜ຈ༽ﾉ"}}`, wantOut: "message"},
		{name: "message keeps markup characters", reply: Message("(>_<) & <3"), wantStatus: http.StatusOK, wantBody: `{"type":4,"data":{"content":"(>_<) & <3"}}`, wantOut: "message"},
		{name: "unsigned", reply: Unauthorized(), wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Unsigned request"}`, wantOut: "unsigned"},
		{name: "bad request", reply: BadRequest(), wantStatus: http.StatusBadRequest, wantBody: `{"error":"Bad request"}`, wantOut: "bad_request"},
		{name: "internal", reply: Failure(http.StatusInternalServerError, MessageInternal), wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`, wantOut: "error"},
		{name: "zero reply", reply: Reply{}, wantStatus: http.StatusInternalServerError, wantBody: `{"error":"Internal server error"}`, wantOut: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := tt.reply.Render()
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, r.Status)
			assert.Equal(t, "application/json", r.ContentType)
			assert.Equal(t, tt.wantBody, string(r.Body))
			assert.Equal(t, tt.wantOut, tt.reply.Outcome())
		})
	}
}
