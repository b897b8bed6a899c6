package cywbus

import (
	"errors"
	"log/slog"
	"time"
)

var errCoreDisable = errors.New("cywbus: core disable failed")

// CoreDisable places core in reset. It is a no-op if the core is already in reset.
//
//	reference: device_core_disable
func (d *Bus) CoreDisable(core Core) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.core_disable(core)
}

// CoreReset disables and then brings core out of reset with its clock
// enabled. If halt is set the core CPU stays halted.
//
//	reference: device_core_reset
func (d *Bus) CoreReset(core Core, halt bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	d.debug("core reset", slog.String("core", core.String()), slog.Bool("halt", halt))
	err := d.core_disable(core)
	if err != nil {
		return err
	}
	var cpuhaltFlag uint8
	if halt {
		cpuhaltFlag = AI_IOCTRL_BIT_CPUHALT
	}
	base, _ := core.base() // Checked by core_disable.
	err = d.bp_write8(base+AI_IOCTRL_OFFSET, AI_IOCTRL_BIT_FGC|AI_IOCTRL_BIT_CLOCK_EN|cpuhaltFlag)
	if err != nil {
		return err
	}
	d.bp_read8(base + AI_IOCTRL_OFFSET) // Dummy read.

	err = d.bp_write8(base+AI_RESETCTRL_OFFSET, 0)
	if err != nil {
		return err
	}
	d.sleep(time.Millisecond)

	err = d.bp_write8(base+AI_IOCTRL_OFFSET, AI_IOCTRL_BIT_CLOCK_EN|cpuhaltFlag)
	if err != nil {
		return err
	}
	d.bp_read8(base + AI_IOCTRL_OFFSET) // Dummy read.
	d.sleep(time.Millisecond)
	return nil
}

// CoreIsUp returns true if core is clocked and out of reset.
// It may return true if communications are down (WL_REG_ON at low).
//
//	reference: device_core_is_up
func (d *Bus) CoreIsUp(core Core) bool {
	if d.ready() != nil {
		return false
	}
	base, err := core.base()
	if err != nil {
		return false
	}
	reg, err := d.bp_read8(base + AI_IOCTRL_OFFSET)
	if err != nil || reg&(AI_IOCTRL_BIT_FGC|AI_IOCTRL_BIT_CLOCK_EN) != AI_IOCTRL_BIT_CLOCK_EN {
		return false
	}
	reg, err = d.bp_read8(base + AI_RESETCTRL_OFFSET)
	return err == nil && reg&AI_RESETCTRL_BIT_RESET == 0
}

func (d *Bus) core_disable(core Core) error {
	base, err := core.base()
	if err != nil {
		return err
	}
	// Check if not already in reset.
	d.bp_read8(base + AI_RESETCTRL_OFFSET) // Dummy read.
	r, err := d.bp_read8(base + AI_RESETCTRL_OFFSET)
	if err != nil {
		return err
	}
	if r&AI_RESETCTRL_BIT_RESET != 0 {
		return nil
	}

	err = d.bp_write8(base+AI_IOCTRL_OFFSET, 0)
	if err != nil {
		return err
	}
	d.bp_read8(base + AI_IOCTRL_OFFSET) // Another dummy read.
	d.sleep(time.Millisecond)

	err = d.bp_write8(base+AI_RESETCTRL_OFFSET, AI_RESETCTRL_BIT_RESET)
	if err != nil {
		return err
	}
	r, err = d.bp_read8(base + AI_RESETCTRL_OFFSET)
	if err != nil {
		return err
	}
	if r&AI_RESETCTRL_BIT_RESET != 0 {
		return nil
	}
	return errCoreDisable
}

func (d *Bus) bp_read8(addr uint32) (uint8, error) {
	v, err := d.backplane_readn(addr, 1)
	return uint8(v), err
}

func (d *Bus) bp_write8(addr uint32, val uint8) error {
	return d.backplane_writen(addr, uint32(val), 1)
}
