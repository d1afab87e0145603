package config

const (
	delimiter = "."

	KeyMemoPrefix   = "memo"
	KeyMemoStore    = KeyMemoPrefix + delimiter + "store"
	KeyMemoCapacity = KeyMemoPrefix + delimiter + "capacity"
	KeyMemoShards   = KeyMemoPrefix + delimiter + "shards"

	KeyLogPrefix = "log"
	KeyLogLevel  = KeyLogPrefix + delimiter + "level"
	KeyLogFormat = KeyLogPrefix + delimiter + "format"

	KeyTunePrefix     = "tune"
	KeyTuneTrials     = KeyTunePrefix + delimiter + "trials"
	KeyTuneWorkers    = KeyTunePrefix + delimiter + "workers"
	KeyTuneSeed       = KeyTunePrefix + delimiter + "seed"
	KeyTuneDirection  = KeyTunePrefix + delimiter + "direction"
	KeyTuneSampleSize = KeyTunePrefix + delimiter + "sample_size"

	KeySamplingPrefix  = "sampling"
	KeySamplingSamples = KeySamplingPrefix + delimiter + "samples"
	KeySamplingWorkers = KeySamplingPrefix + delimiter + "workers"
	KeySamplingSeed    = KeySamplingPrefix + delimiter + "seed"

	envPrefix = "TABLEIZE"
)
