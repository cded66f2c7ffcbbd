package telegram

import (
	"strconv"

	"github.com/google/uuid"
)

var chatNamespace = uuid.MustParse("5d6b1c9e-8f4a-4c3b-9a27-3e0d9f1b7c42")

// SessionID is the interview id of a chat. It is stable across restarts of
// the service.
func SessionID(chatID int64) string {
	return uuid.NewSHA1(chatNamespace, []byte(strconv.FormatInt(chatID, 10))).String()
}
