package model

import (
	"strings"
)

type Conference string

const (
	CONF_UNKNOWN Conference = ""
	CONF_AFC     Conference = "AFC"
	CONF_NFC     Conference = "NFC"
)

var Conferences = []Conference{CONF_AFC, CONF_NFC}

func ParseConference(conf string) Conference {
	conf = strings.ToLower(strings.TrimSpace(conf))
	switch conf {
	case "afc":
		return CONF_AFC
	case "nfc":
		return CONF_NFC
	default:
		return CONF_UNKNOWN
	}
}
