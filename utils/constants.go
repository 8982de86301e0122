package utils

// REVISION is reported in every API response envelope so client logs
// can be matched to a deployed build.
const REVISION = "v1.0.0"
