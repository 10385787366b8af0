package handlers

import (
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"24", 24, false},
		{" 6 ", 6, false},
		{"12ч", 12, false},
		{"0", 0, true},
		{"-5", 0, true},
		{"day", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHours(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKind(t *testing.T) {
	command := &tgbotapi.Message{
		Text:     "/simulate 24",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 9}},
	}

	assert.Equal(t, KindCommand, Kind(tgbotapi.Update{Message: command}))
	assert.Equal(t, KindText, Kind(tgbotapi.Update{Message: &tgbotapi.Message{Text: "24"}}))
	assert.Equal(t, KindCallback, Kind(tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{Data: "demo"}}))
	assert.Equal(t, KindIgnored, Kind(tgbotapi.Update{}))
	assert.Equal(t, KindIgnored, Kind(tgbotapi.Update{Message: &tgbotapi.Message{}}))
}

func TestDependencies_Now(t *testing.T) {
	fixed := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, fixed, Dependencies{Now: func() time.Time { return fixed }}.now())
	assert.WithinDuration(t, time.Now(), Dependencies{}.now(), time.Minute)
}
