package driver

import (
	"crypto/md5"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Device is the hardware identity presented during login. Generating it from
// a fixed seed yields the same identity across restarts, which keeps the IM
// service from treating every login as a new device.
type Device struct {
	Display     string
	Product     string
	Device      string
	Board       string
	Model       string
	FingerPrint string
	BootID      string
	ProcVersion string
	IMEI        string
	Brand       string
	AndroidID   string
	MacAddress  string
	WifiSSID    string
	Guid        []byte
}

// NewDevice derives a device identity from seed. The same seed always
// produces the same identity.
func NewDevice(seed int64) *Device {
	rng := rand.New(rand.NewSource(seed))

	androidID := fmt.Sprintf("PBG.%06d.001", 100000+rng.Intn(900000))
	mac := fmt.Sprintf("02:00:%02x:%02x:%02x:%02x",
		rng.Intn(256), rng.Intn(256), rng.Intn(256), rng.Intn(256))
	bootID, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand never fails to read.
		panic(err)
	}

	d := &Device{
		Display:     androidID,
		Product:     "pbgate",
		Device:      "pbgate",
		Board:       "pbgate",
		Model:       "pbgate",
		Brand:       "mamoe",
		BootID:      bootID.String(),
		ProcVersion: fmt.Sprintf("Linux version 4.19.71 (android-build@github.com) (%d)", rng.Intn(0x7fffffff)),
		IMEI:        randomIMEI(rng),
		AndroidID:   androidID,
		MacAddress:  mac,
		WifiSSID:    fmt.Sprintf("TP-LINK-%06X", rng.Intn(0xffffff)),
	}
	d.FingerPrint = fmt.Sprintf("mamoe/pbgate/pbgate:10/%s/%d:user/release-keys",
		androidID, rng.Intn(10000000))

	sum := md5.Sum([]byte(d.AndroidID + d.MacAddress))
	d.Guid = sum[:]
	return d
}

// randomIMEI builds a 15-digit IMEI with a valid Luhn check digit.
func randomIMEI(rng *rand.Rand) string {
	digits := make([]byte, 14, 15)
	for i := range digits {
		digits[i] = byte('0' + rng.Intn(10))
	}
	sum := 0
	for i, c := range digits {
		d := int(c - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	digits = append(digits, byte('0'+check))
	return string(digits)
}
