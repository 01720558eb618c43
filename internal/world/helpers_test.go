package world

import "sphere-ca/internal/organisms"

func organismsEvery(freq, minAge, minSize int) organisms.Config {
	return organisms.Config{UpdateFrequency: freq, MinAge: minAge, MinSize: minSize}
}
