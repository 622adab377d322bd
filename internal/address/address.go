package address

import "github.com/sirupsen/logrus"

type AddressLogHook struct{}

func (h *AddressLogHook) Fire(entry *logrus.Entry) error {
	entry.Message = "Address: " + entry.Message
	return nil
}

func (h *AddressLogHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
