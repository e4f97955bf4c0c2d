package platform

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/plexsphere/tunnelctl/internal/fsutil"
	"github.com/plexsphere/tunnelctl/internal/wireguard"
)

// ifacePattern is the set of names wg-quick accepts as an interface name.
var ifacePattern = regexp.MustCompile(`^[A-Za-z0-9_=+.][A-Za-z0-9_=+.-]{0,14}$`)

// linkManager probes and removes network links without going through wg-quick.
type linkManager interface {
	// Exists reports whether a link with the given name is present.
	Exists(name string) (bool, error)
	// Delete removes the link. Deleting a missing link returns nil.
	Delete(name string) error
}

// deviceInspector reads interface and peer state straight from the kernel.
type deviceInspector func(name string) (*wireguard.TunnelDetail, error)

// engine drives wg-quick and wg. MacStrategy and LinuxStrategy share it and
// differ only in directory conventions and the optional hooks.
type engine struct {
	name       string
	cfg        Config
	logger     *slog.Logger
	runner     Runner
	loc        locator
	searchDirs []string
	configDirs []string
	privileged func() bool

	// toDevice maps an interface name to the device name the show tool expects.
	toDevice func(name string) string
	// fromDevice maps a device name reported by the show tool to an interface name.
	fromDevice func(device string) string

	// links is the last resort for bring-down; nil where unavailable.
	links linkManager
	// inspect reads device state natively; nil falls back to parsing wg show.
	inspect deviceInspector
}

func newEngine(name string, cfg Config, logger *slog.Logger, searchDirs, configDirs []string) *engine {
	cfg.ApplyDefaults()
	if len(cfg.SearchDirs) > 0 {
		searchDirs = cfg.SearchDirs
	}
	if len(cfg.ConfigDirs) > 0 {
		configDirs = cfg.ConfigDirs
	}
	return &engine{
		name:       name,
		cfg:        cfg,
		logger:     logger.With("component", "platform", "platform", name),
		runner:     newExecRunner(cfg.MaxOutputBytes),
		loc:        newLocator(),
		searchDirs: searchDirs,
		configDirs: configDirs,
		privileged: effectiveRoot,
		toDevice:   sameName,
		fromDevice: sameName,
	}
}

func sameName(name string) string { return name }

// Name identifies the strategy.
func (e *engine) Name() string {
	return e.name
}

// BinaryPath resolves wg-quick: the configured override, then PATH, then the
// conventional install directories.
func (e *engine) BinaryPath() (string, bool) {
	if e.cfg.WGQuickPath != "" {
		if e.loc.isExecutable(e.cfg.WGQuickPath) {
			return e.cfg.WGQuickPath, true
		}
		e.logger.Warn("configured wg-quick path is not executable", "path", e.cfg.WGQuickPath)
	}
	return e.loc.find(wgQuickBinary, e.searchDirs)
}

// IsInstalled reports whether wg-quick can be found.
func (e *engine) IsInstalled() bool {
	_, ok := e.BinaryPath()
	return ok
}

// showBinary resolves wg the same way as wg-quick, falling back to a
// sibling of the resolved wg-quick.
func (e *engine) showBinary() (string, error) {
	if e.cfg.WGPath != "" && e.loc.isExecutable(e.cfg.WGPath) {
		return e.cfg.WGPath, nil
	}
	if p, ok := e.loc.find(wgBinary, e.searchDirs); ok {
		return p, nil
	}
	if quick, ok := e.BinaryPath(); ok {
		sibling := filepath.Join(filepath.Dir(quick), wgBinary)
		if e.loc.isExecutable(sibling) {
			return sibling, nil
		}
	}
	return "", wireguard.ErrNotInstalled
}

// ListInterfaces runs `wg show interfaces`. A failing tool yields an empty
// sequence unless it reported a permission problem.
func (e *engine) ListInterfaces(ctx context.Context) (iter.Seq[string], error) {
	wg, err := e.showBinary()
	if err != nil {
		return nil, err
	}

	res, err := e.runner.Run(ctx, e.cfg.StatusTimeout, wg, "show", "interfaces")
	if err != nil {
		return nil, classifyRunError("wg show interfaces", err)
	}
	if !res.Success() {
		if containsAny(res.Stderr, permissionMarkers) {
			return nil, wireguard.PermissionDenied(strings.TrimSpace(res.Stderr))
		}
		e.logger.Debug("wg show interfaces failed",
			"exit_code", res.ExitCode,
			"stderr", strings.TrimSpace(res.Stderr),
		)
		return emptySeq, nil
	}

	devices := strings.Fields(res.Stdout)
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, e.fromDevice(d))
	}
	return slices.Values(names), nil
}

// Status inspects iface, or the first active interface when iface is empty.
// Non-empty successful `wg show <iface> dump` output means connected; every
// other outcome means not connected.
func (e *engine) Status(ctx context.Context, iface string) (wireguard.ConnectionStatus, error) {
	candidate := iface
	if candidate == "" {
		active, err := e.ListInterfaces(ctx)
		if err != nil {
			return wireguard.Disconnected(), err
		}
		name, ok := first(active)
		if !ok {
			return wireguard.Disconnected(), nil
		}
		candidate = name
	}
	if !ifacePattern.MatchString(candidate) {
		return wireguard.Disconnected(), nil
	}

	wg, err := e.showBinary()
	if err != nil {
		return wireguard.Disconnected(), err
	}

	res, err := e.runner.Run(ctx, e.cfg.StatusTimeout, wg, "show", e.toDevice(candidate), "dump")
	if err != nil {
		e.logger.Warn("status query failed", "interface", candidate, "error", err)
		return wireguard.Disconnected(), nil
	}
	if !res.Success() || strings.TrimSpace(res.Stdout) == "" {
		return wireguard.Disconnected(), nil
	}
	return wireguard.ConnectedVia(candidate, ""), nil
}

// ApplyConfig validates cfg, writes it to <tmp>/<iface>.conf and runs
// `wg-quick up` on that file. wg-quick names the interface after the file
// stem, so the returned name is the one the tool used.
func (e *engine) ApplyConfig(ctx context.Context, cfg wireguard.TunnelConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	wgQuick, ok := e.BinaryPath()
	if !ok {
		return "", wireguard.ErrNotInstalled
	}

	iface := e.nextInterfaceName(ctx)

	artifact, err := fsutil.WriteScoped(e.cfg.TempDir, iface+".conf", []byte(wireguard.Serialize(cfg)))
	if err != nil {
		return "", classifyFileError(err)
	}
	defer func() {
		if err := artifact.Remove(); err != nil {
			e.logger.Warn("failed to remove temporary config",
				"path", artifact.Path,
				"error", err,
			)
		}
	}()

	res, err := e.runner.Run(ctx, e.cfg.CommandTimeout, wgQuick, "up", artifact.Path)
	if err != nil {
		return "", classifyRunError("wg-quick up", err)
	}
	if !res.Success() {
		return "", classifyFailure("wg-quick up", res, e.privileged())
	}

	e.logger.Info("tunnel up",
		"interface", iface,
		"config_name", cfg.Name,
	)
	return iface, nil
}

// nextInterfaceName returns the first <prefix>N not currently active.
func (e *engine) nextInterfaceName(ctx context.Context) string {
	used := make(map[string]bool)
	if active, err := e.ListInterfaces(ctx); err != nil {
		e.logger.Debug("could not list interfaces, assuming none", "error", err)
	} else {
		for name := range active {
			used[name] = true
		}
	}
	for i := 0; ; i++ {
		name := e.cfg.InterfacePrefix + strconv.Itoa(i)
		if !used[name] {
			return name
		}
	}
}

// Disconnect runs `wg-quick down` on a conventional <iface>.conf when one
// exists, otherwise on the bare interface name. When that fails and a link
// manager is available, a still-present link is removed directly.
// InterfaceNotFound is only returned when the interface is no longer listed.
func (e *engine) Disconnect(ctx context.Context, iface string) error {
	if !ifacePattern.MatchString(iface) {
		return wireguard.InterfaceNotFound(iface)
	}

	wgQuick, ok := e.BinaryPath()
	if !ok {
		return wireguard.ErrNotInstalled
	}

	if active, err := e.ListInterfaces(ctx); err == nil {
		if !slices.Contains(slices.Collect(active), iface) {
			return wireguard.InterfaceNotFound(iface)
		}
	} else if !errors.Is(err, wireguard.ErrNotInstalled) {
		e.logger.Debug("could not list interfaces before bring-down", "error", err)
	}

	target := iface
	if path, found := e.conventionalConfig(iface); found {
		target = path
	}

	res, err := e.runner.Run(ctx, e.cfg.CommandTimeout, wgQuick, "down", target)
	var downErr error
	switch {
	case err != nil:
		downErr = classifyRunError("wg-quick down", err)
	case !res.Success():
		downErr = classifyDownFailure(iface, res, e.privileged())
	default:
		e.logger.Info("tunnel down", "interface", iface, "target", target)
		return nil
	}

	toolErr := downErr
	if e.links != nil && !errors.Is(downErr, wireguard.ErrPermissionDenied) {
		downErr = e.removeLink(iface, downErr)
		if downErr == nil {
			return nil
		}
	}

	if errors.Is(downErr, wireguard.ErrInterfaceNotFound) && e.stillActive(ctx, iface) {
		if !errors.Is(toolErr, wireguard.ErrInterfaceNotFound) {
			return toolErr
		}
		return wireguard.CommandFailed(failureMessage("wg-quick down", res))
	}
	return downErr
}

// stillActive reports whether iface is still listed. A failed listing
// reports false and leaves the decision to the tool's own output.
func (e *engine) stillActive(ctx context.Context, iface string) bool {
	active, err := e.ListInterfaces(ctx)
	if err != nil {
		return false
	}
	return slices.Contains(slices.Collect(active), iface)
}

// removeLink is the bring-down fallback for links wg-quick cannot find a
// config for. It bypasses wg-quick's own teardown, so DNS settings and
// routing rules it installed on the way up stay behind.
func (e *engine) removeLink(iface string, downErr error) error {
	exists, err := e.links.Exists(iface)
	if err != nil {
		e.logger.Debug("link probe failed", "interface", iface, "error", err)
		return downErr
	}
	if !exists {
		return wireguard.InterfaceNotFound(iface)
	}
	if err := e.links.Delete(iface); err != nil {
		e.logger.Warn("direct link removal failed",
			"interface", iface,
			"error", err,
		)
		return downErr
	}
	e.logger.Warn("wg-quick down failed, removed link directly",
		"interface", iface,
		"down_error", downErr,
		"left_behind", "DNS settings and routing rules installed by wg-quick up",
	)
	return nil
}

func (e *engine) conventionalConfig(iface string) (string, bool) {
	for _, dir := range e.configDirs {
		p := filepath.Join(dir, iface+".conf")
		if e.loc.exists(p) {
			return p, true
		}
	}
	return "", false
}

// Inspect reads interface and peer state, natively where possible.
func (e *engine) Inspect(ctx context.Context, iface string) (*wireguard.TunnelDetail, error) {
	if !ifacePattern.MatchString(iface) {
		return nil, wireguard.InterfaceNotFound(iface)
	}

	if e.inspect != nil {
		detail, err := e.inspect(iface)
		if err == nil {
			return detail, nil
		}
		if errors.Is(err, wireguard.ErrInterfaceNotFound) {
			return nil, err
		}
		e.logger.Debug("native inspect failed, falling back to wg show", "interface", iface, "error", err)
	}

	wg, err := e.showBinary()
	if err != nil {
		return nil, err
	}
	res, err := e.runner.Run(ctx, e.cfg.StatusTimeout, wg, "show", e.toDevice(iface), "dump")
	if err != nil {
		return nil, classifyRunError("wg show dump", err)
	}
	if !res.Success() {
		msg := failureMessage("wg show", res)
		if containsAny(msg, missingMarkers) {
			return nil, wireguard.InterfaceNotFound(iface)
		}
		return nil, classifyFailure("wg show", res, e.privileged())
	}
	detail, err := parseDump(iface, res.Stdout)
	if err != nil {
		return nil, wireguard.CommandFailed(err.Error())
	}
	return detail, nil
}

// homeConfigDir returns $HOME/.config/wireguard, or "" without a home.
func homeConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "wireguard")
}

func nonEmpty(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
