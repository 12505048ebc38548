package rewards

import (
	"time"

	"github.com/shopspring/decimal"
)

// AchievementCode identifica un logro del catálogo.
type AchievementCode string

const (
	AchievementFirstSupporter       AchievementCode = "first_supporter"
	AchievementGuardianAngel        AchievementCode = "guardian_angel"
	AchievementAnimalHero           AchievementCode = "animal_hero"
	AchievementVolunteerHeart       AchievementCode = "volunteer_heart"
	AchievementVoiceForTheVoiceless AchievementCode = "voice_for_the_voiceless"
)

const (
	// DailyLoginPoints se acredita como máximo una vez por día calendario (UTC).
	DailyLoginPoints int64 = 5
)

// GuardianAngelThreshold es el total confirmado (en reales) que desbloquea guardian_angel.
var GuardianAngelThreshold = decimal.NewFromInt(200)

// User son los campos de usuario que le importan al ledger.
type User struct {
	ID     string
	Name   string
	Points int64

	LastLoginRewardAt *time.Time

	CreatedAt time.Time
}

// Achievement es una entrada del catálogo (inmutable en runtime).
type Achievement struct {
	Code        AchievementCode
	Name        string
	Description string
	BonusPoints int64
}

type UserAchievement struct {
	UserID   string
	Code     AchievementCode
	EarnedAt time.Time
}

// LoginRecord es el historial de logins premiados.
type LoginRecord struct {
	ID            string
	UserID        string
	Day           time.Time // medianoche UTC
	PointsAwarded int64
	CreatedAt     time.Time
}

// Outcome resume lo que aplicó el ledger en una evaluación.
// Se usa después del commit para métricas y notificaciones.
type Outcome struct {
	PointsAdded int64
	Unlocked    []AchievementCode
}

func (o *Outcome) add(other Outcome) {
	o.PointsAdded += other.PointsAdded
	o.Unlocked = append(o.Unlocked, other.Unlocked...)
}

// Empty indica que no se otorgó nada.
func (o Outcome) Empty() bool {
	return o.PointsAdded == 0 && len(o.Unlocked) == 0
}

// UnlockedStrings es un helper para métricas/logs.
func (o Outcome) UnlockedStrings() []string {
	out := make([]string, 0, len(o.Unlocked))
	for _, c := range o.Unlocked {
		out = append(out, string(c))
	}
	return out
}

type Profile struct {
	User         User
	Achievements []UserAchievement
}

type RankingEntry struct {
	UserID string
	Name   string
	Points int64
}

// DefaultCatalog es el catálogo sembrado por migraciones y por el store en memoria.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{
			Code:        AchievementFirstSupporter,
			Name:        "Primeiro Apoiador",
			Description: "Primeira doação confirmada.",
			BonusPoints: 10,
		},
		{
			Code:        AchievementGuardianAngel,
			Name:        "Anjo da Guarda",
			Description: "Total de doações confirmadas a partir de R$ 200.",
			BonusPoints: 50,
		},
		{
			Code:        AchievementAnimalHero,
			Name:        "Herói dos Animais",
			Description: "Primeira adoção aprovada.",
			BonusPoints: 50,
		},
		{
			Code:        AchievementVolunteerHeart,
			Name:        "Coração Voluntário",
			Description: "Candidatura de voluntariado aprovada.",
			BonusPoints: 20,
		},
		{
			Code:        AchievementVoiceForTheVoiceless,
			Name:        "Voz dos Sem Voz",
			Description: "Divulgação revisada e publicada.",
			BonusPoints: 15,
		},
	}
}
