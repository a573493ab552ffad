package avmedia

// Config is the environment-driven heartbeat configuration.
// Tables use the "minute:seconds" syntax, for example "0:5,1:10,5:30".
// A non-empty table takes precedence over the single interval of the same kind.
//
// Load it with the config package:
//
//	var cfg avmedia.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	tracker, err := avmedia.New(sink, avmedia.WithConfig(cfg))
type Config struct {
	Heartbeat            int         `env:"AV_HEARTBEAT"`
	BufferHeartbeat      int         `env:"AV_BUFFER_HEARTBEAT"`
	HeartbeatTable       map[int]int `env:"AV_HEARTBEAT_TABLE"`
	BufferHeartbeatTable map[int]int `env:"AV_BUFFER_HEARTBEAT_TABLE"`
}

func (c Config) playTable() map[int]int {
	if len(c.HeartbeatTable) > 0 {
		return c.HeartbeatTable
	}
	if c.Heartbeat > 0 {
		return map[int]int{0: c.Heartbeat}
	}
	return nil
}

func (c Config) bufferTable() map[int]int {
	if len(c.BufferHeartbeatTable) > 0 {
		return c.BufferHeartbeatTable
	}
	if c.BufferHeartbeat > 0 {
		return map[int]int{0: c.BufferHeartbeat}
	}
	return nil
}
