package hue

import (
	"encoding/json"

	"github.com/amimof/huego"

	"huectl/internal/value"
)

// Modifier accumulates the fields of a partial resource update. Only fields
// that were explicitly set are serialized, so unrelated resource state on the
// bridge is never touched. An empty modifier must not be sent at all; callers
// check Empty and skip the network call.
type Modifier struct {
	fields map[string]interface{}
}

func (m *Modifier) set(key string, v interface{}) {
	if m.fields == nil {
		m.fields = make(map[string]interface{})
	}
	m.fields[key] = v
}

// Empty reports whether no fields have been set.
func (m *Modifier) Empty() bool {
	return len(m.fields) == 0
}

// MarshalJSON serializes exactly the fields that were set.
func (m *Modifier) MarshalJSON() ([]byte, error) {
	if m.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.fields)
}

// LightState modifies the on/off, color and effect state of a light. Relative
// adjustments map to the bridge's *_inc fields, absolute values to the plain
// ones.
type LightState struct {
	Modifier
}

func (m *LightState) On(on bool) {
	m.set("on", on)
}

func (m *LightState) Brightness(a value.Adjust) {
	m.adjust("bri", a.Scale(254), a.Sign)
}

func (m *LightState) Saturation(a value.Adjust) {
	m.adjust("sat", a.Scale(254), a.Sign)
}

func (m *LightState) Hue(a value.Adjust) {
	m.adjust("hue", a.Value, a.Sign)
}

func (m *LightState) ColorTemperature(a value.Adjust) {
	m.adjust("ct", a.Value, a.Sign)
}

func (m *LightState) Color(c value.Color) {
	m.set("xy", []float32{c.X, c.Y})
}

func (m *LightState) Alert(a value.Alert) {
	m.set("alert", a.String())
}

func (m *LightState) Effect(e value.Effect) {
	m.set("effect", e.String())
}

func (m *LightState) TransitionTime(t int) {
	m.set("transitiontime", t)
}

func (m *LightState) adjust(key string, v int, sign value.Sign) {
	switch sign {
	case value.Absolute:
		m.set(key, v)
	case value.Increment:
		m.set(key+"_inc", v)
	case value.Decrement:
		m.set(key+"_inc", -v)
	}
}

// LightAttributes modifies the non-state attributes of a light.
type LightAttributes struct {
	Modifier
}

func (m *LightAttributes) Name(name string) {
	m.set("name", name)
}

// GroupState modifies the action applied to all lights of a group. It carries
// every light state field plus scene recall.
type GroupState struct {
	LightState
}

func (m *GroupState) Scene(id string) {
	m.set("scene", id)
}

// GroupAttributes modifies the name and membership of a group.
type GroupAttributes struct {
	Modifier
}

func (m *GroupAttributes) Name(name string) {
	m.set("name", name)
}

func (m *GroupAttributes) Lights(ids []string) {
	m.set("lights", ids)
}

func (m *GroupAttributes) Class(class string) {
	m.set("class", class)
}

// SceneModifier modifies the attributes of a scene.
type SceneModifier struct {
	Modifier
}

func (m *SceneModifier) Name(name string) {
	m.set("name", name)
}

func (m *SceneModifier) Lights(ids []string) {
	m.set("lights", ids)
}

func (m *SceneModifier) StoreLightState(store bool) {
	m.set("storelightstate", store)
}

// ScheduleModifier modifies the attributes of a schedule.
type ScheduleModifier struct {
	Modifier
}

func (m *ScheduleModifier) Name(name string) {
	m.set("name", name)
}

func (m *ScheduleModifier) Description(d string) {
	m.set("description", d)
}

func (m *ScheduleModifier) Command(c huego.Command) {
	m.set("command", c)
}

func (m *ScheduleModifier) LocalTime(t string) {
	m.set("localtime", t)
}

func (m *ScheduleModifier) Status(s string) {
	m.set("status", s)
}

func (m *ScheduleModifier) AutoDelete(v bool) {
	m.set("autodelete", v)
}

// SensorAttributes modifies the non-state attributes of a sensor.
type SensorAttributes struct {
	Modifier
}

func (m *SensorAttributes) Name(name string) {
	m.set("name", name)
}

// SensorConfig modifies the config object of a sensor.
type SensorConfig struct {
	Modifier
}

func (m *SensorConfig) On(on bool) {
	m.set("on", on)
}

// SensorState modifies the state object of a CLIP sensor.
type SensorState struct {
	Modifier
}

func (m *SensorState) Flag(flag bool) {
	m.set("flag", flag)
}

func (m *SensorState) Status(status int) {
	m.set("status", status)
}

// RuleModifier modifies the attributes of a rule. Conditions and actions
// replace the stored arrays wholesale when given.
type RuleModifier struct {
	Modifier
}

func (m *RuleModifier) Name(name string) {
	m.set("name", name)
}

func (m *RuleModifier) Status(s string) {
	m.set("status", s)
}

func (m *RuleModifier) Conditions(c []*huego.Condition) {
	m.set("conditions", c)
}

func (m *RuleModifier) Actions(a []*huego.RuleAction) {
	m.set("actions", a)
}

// ResourcelinkModifier modifies the attributes of a resourcelink.
type ResourcelinkModifier struct {
	Modifier
}

func (m *ResourcelinkModifier) Name(name string) {
	m.set("name", name)
}

func (m *ResourcelinkModifier) Description(d string) {
	m.set("description", d)
}

func (m *ResourcelinkModifier) Type(t string) {
	m.set("type", t)
}

func (m *ResourcelinkModifier) ClassID(id uint16) {
	m.set("classid", id)
}

func (m *ResourcelinkModifier) Owner(o string) {
	m.set("owner", o)
}

func (m *ResourcelinkModifier) Links(links []string) {
	m.set("links", links)
}

// ConfigModifier modifies the bridge configuration.
type ConfigModifier struct {
	Modifier
}

func (m *ConfigModifier) Name(name string) {
	m.set("name", name)
}

func (m *ConfigModifier) ZigbeeChannel(c int) {
	m.set("zigbeechannel", c)
}

func (m *ConfigModifier) DHCP(v bool) {
	m.set("dhcp", v)
}

func (m *ConfigModifier) IPAddress(ip string) {
	m.set("ipaddress", ip)
}

func (m *ConfigModifier) Netmask(n string) {
	m.set("netmask", n)
}

func (m *ConfigModifier) Gateway(g string) {
	m.set("gateway", g)
}

func (m *ConfigModifier) ProxyAddress(a string) {
	m.set("proxyaddress", a)
}

func (m *ConfigModifier) ProxyPort(p int) {
	m.set("proxyport", p)
}

func (m *ConfigModifier) LinkButton(v bool) {
	m.set("linkbutton", v)
}

func (m *ConfigModifier) Touchlink(v bool) {
	m.set("touchlink", v)
}

func (m *ConfigModifier) Timezone(tz string) {
	m.set("timezone", tz)
}
