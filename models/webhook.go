// Package models — Webhook payload şeması ve structural validation.
//
// Oyun sunucusundan gelen payload ÜÇÜNCÜ TARAF verisidir — hiçbir alanına
// güvenilmez. Validation iki aşamalıdır:
//  1. JSON decode: tip uyuşmazlıkları (ör: Health alanına string gelmesi)
//     json.UnmarshalTypeError olarak yakalanır ve field error'a çevrilir.
//  2. Alan kontrolü: pointer field'lar ile "alan yok" ve "alan sıfır"
//     ayırt edilir; eksik alanlar field bazlı hata listesine eklenir.
//
// Hata varsa payload KISMEN dahi işlenmez — handler 400 + detay listesi döner.
// Validation'ın yan etkisi yoktur.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// FieldError, tek bir alan için validation hatası.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// WebhookPayload, doğrulanmış (strongly-typed) webhook gövdesi.
type WebhookPayload struct {
	ServerDate string
	Players    []WebhookPlayer
}

// WebhookPlayer, payload içindeki tek bir oyuncu girdisi.
// Alan adları oyun sunucusu mod'unun gönderdiği JSON ile birebir aynıdır.
type WebhookPlayer struct {
	Name            string
	ID              string // steamId
	Health          float64
	Blood           float64
	Shock           float64
	Water           float64
	Energy          float64
	HeatComfort     float64
	Stamina         float64
	Wetness         float64
	EnvironmentTemp float64
	Playtime        float64
	DistanceWalked  float64
	KilledZombies   float64
	Position        [3]float64
	Diseases        []string
}

// rawWebhookPayload, decode aşamasının ara temsili.
// Tüm field'lar pointer — nil ise alan payload'da hiç yok demektir.
type rawWebhookPayload struct {
	ServerDate *string            `json:"ServerDate"`
	Players    []*rawWebhookPlayer `json:"Players"`
	playersSet bool
}

// UnmarshalJSON, Players alanının hiç gönderilmemesi ile boş array
// gönderilmesini ayırt etmek için özel decode yapar.
func (p *rawWebhookPayload) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if raw, ok := probe["ServerDate"]; ok {
		if err := json.Unmarshal(raw, &p.ServerDate); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				typeErr.Field = "ServerDate"
			}
			return err
		}
	}

	if raw, ok := probe["Players"]; ok {
		p.playersSet = true
		if err := json.Unmarshal(raw, &p.Players); err != nil {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) {
				if typeErr.Field == "" {
					typeErr.Field = "Players"
				} else {
					typeErr.Field = "Players." + typeErr.Field
				}
			}
			return err
		}
	}

	return nil
}

type rawWebhookPlayer struct {
	Name            *string    `json:"Name"`
	ID              *string    `json:"ID"`
	Health          *float64   `json:"Health"`
	Blood           *float64   `json:"Blood"`
	Shock           *float64   `json:"Shock"`
	Water           *float64   `json:"Water"`
	Energy          *float64   `json:"Energy"`
	HeatComfort     *float64   `json:"HeatComfort"`
	Stamina         *float64   `json:"Stamina"`
	Wetness         *float64   `json:"Wetness"`
	EnvironmentTemp *float64   `json:"EnvironmentTemp"`
	Playtime        *float64   `json:"Playtime"`
	DistanceWalked  *float64   `json:"DistanceWalked"`
	KilledZombies   *float64   `json:"KilledZombies"`
	Position        *[]float64 `json:"Position"`
	Diseases        *[]string  `json:"Diseases"`
}

// ParseWebhookPayload, body'yi decode eder ve şemaya karşı doğrular.
//
// Dönüş: (payload, nil) geçerliyse; (nil, hatalar) geçersizse.
// Hata listesi boş DEĞİLSE payload her zaman nil'dir — kısmi sonuç dönülmez.
func ParseWebhookPayload(r io.Reader) (*WebhookPayload, []FieldError) {
	var raw rawWebhookPayload

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "(root)"
			}
			return nil, []FieldError{{
				Field:   field,
				Message: "unexpected type",
			}}
		}
		return nil, []FieldError{{Field: "(root)", Message: "invalid JSON body"}}
	}

	var errs []FieldError

	if raw.ServerDate == nil {
		errs = append(errs, FieldError{Field: "ServerDate", Message: "required string"})
	}
	if !raw.playersSet {
		errs = append(errs, FieldError{Field: "Players", Message: "required array"})
	}

	players := make([]WebhookPlayer, 0, len(raw.Players))
	for i, rp := range raw.Players {
		prefix := fmt.Sprintf("Players[%d]", i)
		if rp == nil {
			errs = append(errs, FieldError{Field: prefix, Message: "must be an object"})
			continue
		}
		player, playerErrs := rp.validate(prefix)
		if len(playerErrs) > 0 {
			errs = append(errs, playerErrs...)
			continue
		}
		players = append(players, *player)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &WebhookPayload{
		ServerDate: *raw.ServerDate,
		Players:    players,
	}, nil
}

// validate, tek bir oyuncu girdisini doğrular ve typed struct'a çevirir.
func (rp *rawWebhookPlayer) validate(prefix string) (*WebhookPlayer, []FieldError) {
	var errs []FieldError

	requireString := func(name string, v *string) string {
		if v == nil {
			errs = append(errs, FieldError{Field: prefix + "." + name, Message: "required string"})
			return ""
		}
		return *v
	}
	requireNumber := func(name string, v *float64) float64 {
		if v == nil {
			errs = append(errs, FieldError{Field: prefix + "." + name, Message: "required number"})
			return 0
		}
		return *v
	}

	player := WebhookPlayer{
		Name:            requireString("Name", rp.Name),
		ID:              requireString("ID", rp.ID),
		Health:          requireNumber("Health", rp.Health),
		Blood:           requireNumber("Blood", rp.Blood),
		Shock:           requireNumber("Shock", rp.Shock),
		Water:           requireNumber("Water", rp.Water),
		Energy:          requireNumber("Energy", rp.Energy),
		HeatComfort:     requireNumber("HeatComfort", rp.HeatComfort),
		Stamina:         requireNumber("Stamina", rp.Stamina),
		Wetness:         requireNumber("Wetness", rp.Wetness),
		EnvironmentTemp: requireNumber("EnvironmentTemp", rp.EnvironmentTemp),
		Playtime:        requireNumber("Playtime", rp.Playtime),
		DistanceWalked:  requireNumber("DistanceWalked", rp.DistanceWalked),
		KilledZombies:   requireNumber("KilledZombies", rp.KilledZombies),
	}

	if strings.TrimSpace(player.ID) == "" && rp.ID != nil {
		errs = append(errs, FieldError{Field: prefix + ".ID", Message: "must not be empty"})
	}

	// Position tam 3 sayı olmalı — tuple semantiği
	if rp.Position == nil {
		errs = append(errs, FieldError{Field: prefix + ".Position", Message: "required array of exactly 3 numbers"})
	} else if len(*rp.Position) != 3 {
		errs = append(errs, FieldError{Field: prefix + ".Position", Message: "must contain exactly 3 numbers"})
	} else {
		copy(player.Position[:], *rp.Position)
	}

	// Diseases zorunlu — boş array geçerli, null/eksik geçersiz
	if rp.Diseases == nil {
		errs = append(errs, FieldError{Field: prefix + ".Diseases", Message: "required array of strings"})
	} else {
		player.Diseases = *rp.Diseases
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &player, nil
}
