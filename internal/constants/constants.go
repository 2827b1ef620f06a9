package constants

// DefaultBaseURL is the standard base URL for the Freesound REST API.
const DefaultBaseURL = "https://freesound.org/apiv2"

// DefaultUserAgent is sent with every request unless overridden.
const DefaultUserAgent = "freesound-mcp/1.0.0"

// EnvAPIKey is the environment variable holding the Freesound API key.
const EnvAPIKey = "FREESOUND_API_KEY"

// DefaultDownloadDir is the download directory relative to the user's home directory.
const DefaultDownloadDir = ".freesound-mcp/downloads"

// SearchFields is the fixed field set requested from the text search endpoint.
const SearchFields = "id,name,duration,previews,license"
