package payment

// crc16ccitt computes the CRC-16/CCITT-FALSE checksum (poly 0x1021, init
// 0xFFFF) required by the EMV QR spec for the tag-63 field of a PromptPay
// payload. The checksum is computed over the payload including the "6304"
// tag/length prefix.
func crc16ccitt(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
