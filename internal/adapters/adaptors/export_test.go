package adaptors

var OptionEnv = optionEnv
