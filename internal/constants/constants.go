package constants

// Centralized constants for env keys, routes, response keys and log fields.
const (
	// Environment variable keys
	EnvConfigPath  = "ARENA_CONFIG"
	EnvDBPath      = "ARENA_DB"
	EnvDatabaseURL = "ARENA_DATABASE_URL"
	EnvServerAddr  = "ARENA_ADDR"
	EnvLogLevel    = "ARENA_LOG_LEVEL"
	EnvHealthURL   = "ARENA_HEALTH_URL"

	DefaultConfigPath = "./arena_config.json"
	DefaultDBPath     = "./data/arena.db"
	DefaultServerAddr = ":8080"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"
)

// Routes used by the backend router
const (
	RouteAPIPrefix       = "/api"
	RouteSpecies         = "/species"
	RouteEffectiveness   = "/effectiveness"
	RouteTrainers        = "/trainers"
	RouteTrainerByName   = "/trainers/:name"
	RouteTrainerRoster   = "/trainers/:name/roster"
	RouteTrainerActive   = "/trainers/:name/active"
	RouteTrainerRest     = "/trainers/:name/rest"
	RouteTrainerHistory  = "/trainers/:name/history"
	RouteTrainerBattles  = "/trainers/:name/battles"
	RouteTrainerLiveDuel = "/trainers/:name/battles/live"
	RouteLeaderboard     = "/leaderboard"
	RouteVersion         = "/version"
	RouteHealth          = "/healthz"
)

// Common JSON response keys
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest         = "Invalid request"
	ErrTrainerNotFound        = "Trainer not found"
	ErrTrainerExists          = "Trainer name already taken"
	ErrInvalidTrainerName     = "Trainer name must be 3-32 letters, digits, spaces or .-'"
	ErrUnknownSpecies         = "Unknown species"
	ErrNotAStarter            = "Species is not a starter"
	ErrRosterFull             = "Roster is full"
	ErrInvalidSlot            = "Invalid roster slot"
	ErrCombatantFainted       = "Combatant has fainted"
	ErrNoValidRoster          = "No combatant is able to battle"
	ErrBattleInProgress       = "A battle is already in progress for this trainer"
	ErrBattleScriptExhausted  = "Battle script ended before the battle finished"
	ErrFailedFetchTrainers    = "Failed to fetch trainers"
	ErrFailedFetchHistory     = "Failed to fetch history"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedSaveTrainer      = "Failed to save trainer"
	ErrFailedRunBattle        = "Failed to run battle"
)

// Logging field names
const (
	LogFieldTrainer   = "trainer"
	LogFieldSpecies   = "species"
	LogFieldOpponent  = "opponent"
	LogFieldBattleID  = "battle_id"
	LogFieldOutcome   = "outcome"
	LogFieldTurns     = "turns"
	LogFieldSlot      = "slot"
	LogFieldKey       = "key"
	LogFieldAddr      = "addr"
	LogFieldDriver    = "driver"
	LogFieldPath      = "path"
	LogFieldCount     = "count"
	LogFieldVersion   = "version"
	LogFieldRemoteIP  = "remote_ip"
	LogFieldEventKind = "event_kind"
	LogFieldLevel     = "level"
)
